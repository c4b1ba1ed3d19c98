// Command ingest parses pre-extracted price list text files from the command
// line, bypassing the upload queue. Each input produces a JSON file with the
// normalized pages next to the source. With -db the result is also persisted.
// Usage: go run ./cmd/ingest [-db] [-pages N] file...
// File names follow the <provider>[_premium|_common]_<YYYYMM>.txt convention.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"beanvault/internal/config"
	"beanvault/internal/extract"
	"beanvault/internal/parser"
	_ "beanvault/internal/parser/deepseek"
	"beanvault/internal/port"
	"beanvault/internal/repository/postgres"
	"beanvault/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	persist := flag.Bool("db", false, "persist parsed beans to the database")
	pageCount := flag.Int("pages", 0, "page count of the source document (0 = unknown)")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		return fmt.Errorf("usage: ingest [-db] [-pages N] file...")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	priceListParser, err := parser.NewParser(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("initializing parser: %w", err)
	}

	var ingestSvc service.IngestService
	if *persist {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer func() { _ = db.Close() }()

		beanRepo := postgres.NewBeanRepo(db)
		latestRepo := postgres.NewLatestDataRepo(db)
		beanSvc := service.NewBeanService(beanRepo, latestRepo)
		ingestSvc = service.NewIngestService(
			postgres.NewPriceListRepo(db), beanRepo, latestRepo, beanSvc,
			priceListParser, nil, nil, cfg.S3, "",
		)
	}

	ctx := context.Background()
	for _, path := range files {
		if err := ingestFile(ctx, path, *pageCount, priceListParser, ingestSvc); err != nil {
			log.Printf("ERROR %s: %v", path, err)
		}
	}
	return nil
}

func ingestFile(ctx context.Context, path string, pageCount int, priceListParser port.PriceListParser, ingestSvc service.IngestService) error {
	provider, beanType, year, month, err := service.ParseFilename(path)
	if err != nil {
		return fmt.Errorf("parsing file name: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var pages []extract.Page
	var modelUsed string

	if ingestSvc != nil {
		result, err := ingestSvc.IngestText(ctx, provider, beanType, year, month, string(data), pageCount)
		if err != nil {
			return fmt.Errorf("ingesting: %w", err)
		}
		pages = result.Pages
		modelUsed = result.ModelUsed
		log.Printf("%s: persisted %d beans", path, result.BeanCount)
	} else {
		out, err := priceListParser.Parse(ctx, port.ParseInput{Text: string(data), PageCount: pageCount})
		if err != nil {
			return fmt.Errorf("parsing: %w", err)
		}
		pages = out.Pages
		modelUsed = out.ModelUsed
	}

	beanTotal := 0
	for _, page := range pages {
		beanTotal += len(page.Items)
		log.Printf("%s: page %d: %d beans", path, page.Number, len(page.Items))
	}
	log.Printf("%s: %s %s %d-%02d: %d pages, %d beans (model %s)",
		path, provider, beanType, year, month, len(pages), beanTotal, modelUsed)

	outPath := strings.TrimSuffix(path, ".txt") + ".json"
	encoded, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
