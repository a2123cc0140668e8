package cmd

import (
	"fmt"

	"github.com/Rana718/skyseed/internal/metrics"
	"github.com/Rana718/skyseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	fillRows        int
	fillTables      []string
	fillMetricsFile string
	fillSeed        uint64
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill tables with synthetic rows",
	Long: `Fill the configured tables, in order, with synthetic rows.

Each table's routine reads the ids of the tables it references from the
database, so referenced tables must be filled first. A table that fails is
reported and the next table is still filled.

Examples:
  skyseed fill
  skyseed fill --rows 500
  skyseed fill --table customers --table airlines`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		rows := cfg.Fill.Rows
		if cmd.Flags().Changed("rows") {
			rows = fillRows
		}
		order := cfg.Fill.Order
		if len(fillTables) > 0 {
			order = fillTables
		}
		metricsFile := cfg.Fill.MetricsFile
		if fillMetricsFile != "" {
			metricsFile = fillMetricsFile
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		inspector, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer inspector.Close()

		recorder := metrics.NewRecorder()
		filler := seeder.New(inspector, seeder.NewDataGenerator(fillSeed), log)

		color.Cyan("🌱 Filling %d tables in %s", len(order), cfg.Database.DBName)

		failed := 0
		_, err = filler.Run(ctx, order, rows, func(r seeder.Report) {
			recorder.Observe(r)
			if r.OK() {
				color.Green("✅ Successfully filled %s with %d", r.Table, r.Inserted)
				return
			}
			failed++
			color.Red("❌ Can not fill %s: %v", r.Table, r.Err)
		})
		if err != nil {
			return err
		}

		if metricsFile != "" {
			if err := recorder.WriteTextfile(metricsFile); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
			color.Cyan("📈 Metrics written to %s", metricsFile)
		}

		if failed > 0 {
			color.Yellow("⚠️  %d of %d tables could not be filled", failed, len(order))
		} else {
			color.Green("🎉 All %d tables filled", len(order))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().IntVarP(&fillRows, "rows", "n", 0, "Rows per table (default from config, 100)")
	fillCmd.Flags().StringSliceVarP(&fillTables, "table", "t", nil, "Fill only these tables, in the given order")
	fillCmd.Flags().StringVar(&fillMetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	fillCmd.Flags().Uint64Var(&fillSeed, "seed", 0, "Random seed (0 picks one)")
}
