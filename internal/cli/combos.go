package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/framestack/envelope-engine/internal/aci"
	"github.com/framestack/envelope-engine/internal/config"
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "List the load-combination catalog and selection presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := aci.NewCatalog()
		if err != nil {
			return err
		}

		fmt.Println("Strength combinations (ACI 318):")
		for _, combo := range catalog.List(aci.Strength) {
			fmt.Printf("  %-3s %-36s %s\n", combo.ID, combo.Name, combo.Description)
		}
		fmt.Println()
		fmt.Println("Service combinations:")
		for _, combo := range catalog.List(aci.Service) {
			fmt.Printf("  %-3s %-36s %s\n", combo.ID, combo.Name, combo.Description)
		}

		presetsPath := ""
		if cfg, err := config.Load(configPath); err == nil {
			presetsPath = cfg.Selection.PresetsPath
		}
		presets, err := aci.LoadPresets(presetsPath)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("Presets:")
		for _, preset := range presets.All() {
			fmt.Printf("  %-10s %s (%s)\n", preset.Name, strings.Join(preset.Combinations, ","), preset.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(combosCmd)
}
