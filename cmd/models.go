package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TolgaCulfa/sunum2/internal/ai"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List configured model tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := ai.LoadRegistry()
		if err != nil {
			return err
		}
		for _, m := range registry.ListModels() {
			fmt.Printf("%-16s %-16s %-10s -> %s\n", m.Name, m.Label, m.SpeedText(), m.Code)
		}
		fmt.Printf("\nModel overrides: %s\n", ai.ModelsPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
