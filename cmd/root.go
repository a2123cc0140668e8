package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	blueColor := color.New(color.FgBlue, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════╗",
		"║    ███████╗██╗  ██╗██╗   ██╗                     ║",
		"║    ██╔════╝██║ ██╔╝╚██╗ ██╔╝                     ║",
		"║    ███████╗█████╔╝  ╚████╔╝   ✈  seed            ║",
		"║    ╚════██║██╔═██╗   ╚██╔╝                       ║",
		"║    ███████║██║  ██╗   ██║                        ║",
		"║    ╚══════╝╚═╝  ╚═╝   ╚═╝                        ║",
		"║                                                  ║",
		"║        Synthetic data for airline schemas        ║",
		"╚══════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		blueColor.Println(line)
	}

	fmt.Print("                 ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "skyseed",
	Short: "Fill an airline database with plausible synthetic data",
	Long: `
skyseed connects to an existing airline database and fills its tables with
randomized but referentially consistent rows: customers, airports, flights,
seats, bookings, maintenance events, work orders and more.

Database Support:
- PostgreSQL
- MySQL
- SQLite`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("skyseed version %s\n", Version)
			os.Exit(0)
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./skyseed.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("skyseed")
	}

	// SKYSEED_DATABASE_HOST overrides database.host, and so on.
	viper.SetEnvPrefix("SKYSEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}

// bindEnv registers every key so Unmarshal sees env-only values.
func bindEnv() {
	keys := []string{
		"database.provider", "database.host", "database.port", "database.username",
		"database.password", "database.db_name", "database.schema_name", "database.sslmode",
		"fill.rows", "fill.metrics_file", "log.level", "log.encoding",
	}
	for _, key := range keys {
		viper.BindEnv(key)
	}
}
