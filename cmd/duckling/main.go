package main

import (
	"fmt"
	"os"

	"github.com/siherrmann/duckling/helper"
	"github.com/spf13/cobra"
)

var (
	config  *helper.Configuration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "duckling",
	Short: "Extract typed entities from text with a Duckling server",
	Long: `duckling extracts dates, durations, quantities, money and more from
free text. Relative expressions are resolved against a reference time in a
timezone, and the locale selects the grammar.

Configuration is read from the environment (and a .env file):
  DUCKLING_URL     Duckling server, default http://localhost:8000
  DUCKLING_TIMEOUT request timeout, default 10s
  DUCKLING_TZDB    tzdata directory or zoneinfo.zip, default /usr/share/zoneinfo

Examples:
  duckling parse --lang es --locale ES_CO --tz America/Bogota --dims time "En dos semanas"
  duckling parse --dims distance "3 km"
  duckling dims
  duckling zones --filter America/`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = helper.NewConfiguration()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if verbose {
			config.LogLevel = "debug"
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine calls")
	rootCmd.PersistentFlags().String("tzdb", "", "Timezone database path (overrides DUCKLING_TZDB)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(dimsCmd)
	rootCmd.AddCommand(zonesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// tzdbPath returns the --tzdb flag or the configured path
func tzdbPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("tzdb"); path != "" {
		return path
	}
	return config.TimeZoneDBPath
}
