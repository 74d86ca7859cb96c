package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"reddlag/adapters/excel"
	"reddlag/adapters/gonumstats"
	"reddlag/app"
	"reddlag/domain/core"
	"reddlag/internal"
	"reddlag/internal/config"
	"reddlag/internal/report"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := internal.NewDefaultLogger()

	sourceCfg := excel.DefaultSourceConfig()
	workbook := excel.NewWorkbookSource(cfg.Inputs.ReddWorkbook, sourceCfg)
	reservoir := excel.NewReservoirSeriesSource(cfg.Inputs.ReservoirFile, sourceCfg)
	snowpack := excel.NewSnowpackSeriesSource(cfg.Inputs.SnowpackFile, sourceCfg)

	// The three inputs are independent files; load them concurrently.
	// The pipeline itself stays a single sequential pass.
	var inputs app.Inputs
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if inputs.ReddTable, err = workbook.LoadReddCounts(); err != nil {
			return err
		}
		inputs.Exclusions, err = workbook.LoadExclusions()
		return err
	})
	g.Go(func() error {
		var err error
		inputs.PoolReadings, err = reservoir.LoadPoolReadings()
		return err
	})
	g.Go(func() error {
		var err error
		inputs.Snowpack, err = snowpack.LoadSnowpack()
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Input loading failed: %v", err)
	}

	pipeline := app.NewPipeline(gonumstats.New(), logger)
	result, err := pipeline.Run(inputs, app.Options{
		TargetComplex: cfg.Analysis.TargetComplex,
		Populations:   cfg.Analysis.Populations,
		MinYear:       core.Year(cfg.Analysis.MinYear),
		MaxLag:        cfg.Analysis.MaxLag,
		Alpha:         cfg.Analysis.Alpha,
	})
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	for _, w := range result.Warnings() {
		logger.Warn("%s", w)
	}

	if err := writeReports(cfg, result.RunID, report.RenderMarkdown(result)); err != nil {
		log.Fatalf("Report writing failed: %v", err)
	}

	logger.Info("run %s complete in %s: %s", result.RunID, result.Elapsed, result.Selection.Final.Formula)
}

func writeReports(cfg *config.Config, runID core.RunID, md string) error {
	if err := os.MkdirAll(cfg.Report.OutDir, 0o755); err != nil {
		return err
	}
	base := filepath.Join(cfg.Report.OutDir, "run-"+runID.String())
	if err := os.WriteFile(base+".md", []byte(md), 0o644); err != nil {
		return err
	}
	if cfg.Report.HTML {
		if err := os.WriteFile(base+".html", report.RenderHTML(md), 0o644); err != nil {
			return err
		}
	}
	return nil
}
