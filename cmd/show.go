package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showLimit int

var showCmd = &cobra.Command{
	Use:   "show <table>",
	Short: "Print the rows of a table as YAML",
	Args:  cobra.ExactArgs(1),
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

		rows, err := inspector.GetAllRows(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		total := len(rows)
		if showLimit > 0 && total > showLimit {
			rows = rows[:showLimit]
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode rows: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}

		color.Cyan("📊 %d of %d rows from %s", len(rows), total, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "l", 20, "Maximum rows to print (0 for all)")
}
