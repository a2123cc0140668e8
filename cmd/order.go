package cmd

import (
	"fmt"

	"github.com/Rana718/skyseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Check the configured fill order against table dependencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		color.Cyan("📋 Configured fill order:")
		for i, table := range cfg.Fill.Order {
			fmt.Printf("  %2d. %s\n", i+1, table)
		}

		warnings := seeder.CheckOrder(cfg.Fill.Order)
		if len(warnings) == 0 {
			color.Green("✅ Every table comes after the tables it reads from")
			return nil
		}

		for _, w := range warnings {
			color.Yellow("⚠️  %s", w)
		}

		suggested, err := seeder.SuggestOrder()
		if err != nil {
			return err
		}
		color.Cyan("💡 A dependency-respecting order:")
		for i, table := range suggested {
			fmt.Printf("  %2d. %s\n", i+1, table)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
}
