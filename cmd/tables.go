package cmd

import (
	"fmt"

	"github.com/Rana718/skyseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the schema's tables and whether skyseed can fill them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		inspector, err := connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer inspector.Close()

		tables, err := inspector.ListTables(cmd.Context())
		if err != nil {
			return err
		}

		color.Cyan("📋 Tables in schema %s:", inspector.Schema())
		present := make(map[string]bool, len(tables))
		for _, table := range tables {
			present[table] = true
			if seeder.IsRegistered(table) {
				color.Green("  ✅ %s", table)
			} else {
				fmt.Printf("  ·  %s (no fill routine)\n", table)
			}
		}

		for _, table := range seeder.Tables() {
			if !present[table] {
				color.Yellow("  ⚠️  %s is fillable but missing from the schema", table)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
