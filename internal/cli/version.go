package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI release version.
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the envelope-engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("envelope-engine v%s\n", Version)
		fmt.Println("ACI 318 load-combination envelope engine")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
