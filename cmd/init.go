package cmd

import (
	"github.com/Rana718/skyseed/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initProvider string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter skyseed.yaml",
	Long: `Write a starter skyseed.yaml with connection settings and the default fill
order. Every value can also be set through SKYSEED_* environment variables,
for example SKYSEED_DATABASE_HOST.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Database: config.Database{
				Provider: initProvider,
				DBName:   "airline",
				Username: "postgres",
			},
		}
		if cfg.IsSQLite() {
			cfg.Database.DBName = "airline.db"
			cfg.Database.Username = ""
		}
		cfg.ApplyDefaults()

		path := config.DefaultFileName
		if cfgFile != "" {
			path = cfgFile
		}
		if err := cfg.WriteFile(path, initForce); err != nil {
			return err
		}

		color.Green("✅ Created %s", path)
		color.Cyan("💡 Set the password with SKYSEED_DATABASE_PASSWORD, then run: skyseed fill")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().StringVar(&initProvider, "provider", "postgresql", "Database provider (postgresql, mysql, sqlite)")
}
