package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/siherrmann/duckling"
	"github.com/siherrmann/duckling/core/engine"
	"github.com/siherrmann/duckling/helper"
	"github.com/siherrmann/duckling/model"
)

var messages = []string{
	"En dos semanas llegan 5 litros de leche",
	"La reunión es mañana a las 3pm, a 3 km de la oficina",
	"Escríbeme a ana@example.com o llama al +57 300 123 4567",
	"El vuelo cuesta 250 dólares y dura 4 horas",
}

func main() {
	ctx := context.Background()

	// Start a Duckling server and a PostgreSQL container
	stopDuckling, ducklingURL, err := helper.MustStartDucklingContainer()
	if err != nil {
		log.Fatalf("Failed to start Duckling container: %v", err)
	}
	defer stopDuckling(ctx)

	stopPostgres, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer stopPostgres(ctx)

	logger := helper.NewLogger(os.Stdout, slog.LevelInfo)

	tzdb, err := duckling.LoadTimeZones("/usr/share/zoneinfo")
	if err != nil {
		log.Fatalf("Failed to load timezone database: %v", err)
	}

	httpEngine, err := engine.NewHTTPEngine(&helper.EngineConfiguration{URL: ducklingURL, Timeout: 30 * time.Second}, logger)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	d := duckling.NewWithEngine(tzdb, httpEngine, logger)
	if err := d.Start(ctx); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	defer d.Close()

	// Persist every extraction
	err = d.UseStore(&helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	})
	if err != nil {
		log.Fatalf("Failed to use store: %v", err)
	}

	// Resolve relative expressions in Bogotá with Colombian Spanish rules
	refTime := d.CurrentRefTime("America/Bogota")
	locale := duckling.ParseLocale("ES_CO", duckling.DefaultLocaleLang(duckling.ParseLang("es")))
	c := duckling.NewContext(refTime, locale)

	fmt.Printf("Reference time: %s (%s)\n\n", refTime.ISO8601(), locale.Name())

	for _, text := range messages {
		extraction, err := d.ParseAndStore(ctx, text, c, model.AllDimensions(), false)
		if err != nil {
			log.Fatalf("Failed to parse %q: %v", text, err)
		}

		fmt.Printf("%q\n", text)
		for _, e := range extraction.Entities {
			fmt.Printf("  %-16s %-22q %s\n", e.Dim, e.Body, e.Value.Get("value").Raw)
		}
		fmt.Println()
	}

	// Query the stored extractions
	withTime, err := d.Extractions.SelectExtractionsByDimension(ctx, model.DimensionTime, 10)
	if err != nil {
		log.Fatalf("Failed to select extractions: %v", err)
	}
	fmt.Printf("%d stored messages mention a time\n", len(withTime))

	found, err := d.Extractions.SelectExtractionsBySearch(ctx, "km", 10)
	if err != nil {
		log.Fatalf("Failed to search extractions: %v", err)
	}
	for _, e := range found {
		fmt.Printf("Search match: %q (%d entities)\n", e.Text, len(e.Entities))
	}
}
