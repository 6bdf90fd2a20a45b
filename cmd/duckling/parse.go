package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/siherrmann/duckling"
	"github.com/siherrmann/duckling/core/engine"
	"github.com/siherrmann/duckling/core/timezone"
	"github.com/siherrmann/duckling/helper"
	"github.com/siherrmann/duckling/model"
	"github.com/spf13/cobra"
)

var parseFlags struct {
	url     string
	zone    string
	lang    string
	locale  string
	reftime int64
	dims    []string
	latent  bool
}

var parseCmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Extract entities from text",
	Long: `Extract entities from text and print them as JSON.

Several texts are parsed concurrently and printed as one array per text.
Unknown timezones fall back to UTC, unknown languages to EN and unknown
dimension names are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFlags.url, "url", "", "Duckling server URL (overrides DUCKLING_URL)")
	parseCmd.Flags().StringVar(&parseFlags.zone, "tz", model.UTCZone, "Timezone of the reference time")
	parseCmd.Flags().StringVar(&parseFlags.lang, "lang", "EN", "Language code")
	parseCmd.Flags().StringVar(&parseFlags.locale, "locale", "", "Locale as LANG_REGION, e.g. ES_CO")
	parseCmd.Flags().Int64Var(&parseFlags.reftime, "reftime", 0, "Reference time as epoch seconds, 0 for now")
	parseCmd.Flags().StringSliceVar(&parseFlags.dims, "dims", nil, "Dimensions to extract, all if empty")
	parseCmd.Flags().BoolVar(&parseFlags.latent, "latent", false, "Include latent parses")
}

func runParse(cmd *cobra.Command, args []string) error {
	logger := helper.NewLogger(os.Stderr, config.Level())

	tzdb, err := timezone.Load(tzdbPath(cmd), logger)
	if err != nil {
		return err
	}

	engineConfig := config.Engine
	if parseFlags.url != "" {
		engineConfig.URL = parseFlags.url
	}
	httpEngine, err := engine.NewHTTPEngine(&engineConfig, logger)
	if err != nil {
		return err
	}

	d := duckling.NewWithEngine(tzdb, httpEngine, logger)
	if err := d.Start(cmd.Context()); err != nil {
		return fmt.Errorf("duckling server at %s is not reachable: %w", httpEngine.URL(), err)
	}
	defer d.Close()

	refTime := d.CurrentRefTime(parseFlags.zone)
	if parseFlags.reftime != 0 {
		refTime = d.ParseRefTime(parseFlags.zone, parseFlags.reftime)
	}

	locale := duckling.DefaultLocaleLang(duckling.ParseLang(parseFlags.lang))
	if parseFlags.locale != "" {
		locale = duckling.ParseLocale(parseFlags.locale, locale)
	}

	dims := model.AllDimensions()
	if len(parseFlags.dims) > 0 {
		dims = duckling.ParseDimensions(parseFlags.dims)
		if len(dims) == 0 {
			return fmt.Errorf("none of the dimensions %s is known", strings.Join(parseFlags.dims, ", "))
		}
	}

	logger.Debug("Parsing",
		slog.Int("texts", len(args)),
		slog.String("locale", locale.Name()),
		slog.String("reference_time", refTime.ISO8601()),
	)

	c := duckling.NewContext(refTime, locale)
	results, err := d.ParseAll(cmd.Context(), args, c, dims, parseFlags.latent, 4)
	if err != nil {
		return err
	}

	var out interface{} = results
	if len(results) == 1 {
		out = results[0]
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
