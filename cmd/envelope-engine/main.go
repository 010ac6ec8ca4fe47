package main

import "github.com/framestack/envelope-engine/internal/cli"

func main() {
	cli.Execute()
}
