package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/luminosity-datagen/internal/etl"
	"github.com/noah-isme/luminosity-datagen/internal/generator"
	"github.com/noah-isme/luminosity-datagen/pkg/config"
	"github.com/noah-isme/luminosity-datagen/pkg/database"
	"github.com/noah-isme/luminosity-datagen/pkg/logger"
)

type app struct {
	cfg *config.Config
	log *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	a := &app{cfg: cfg, log: logr}

	root := &cobra.Command{
		Use:           "luminosity",
		Short:         "Generate, consolidate, load, and validate the Luminosity Academy decade dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.generateCmd(),
		a.consolidateCmd(),
		a.loadCmd(),
		a.validateCmd(),
	)

	if err := root.Execute(); err != nil {
		logr.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func (a *app) generateCmd() *cobra.Command {
	gen := a.cfg.Generation
	seed := gen.Seed
	startYear := gen.StartYear
	endYear := gen.EndYear
	baselineDir := gen.BaselineDir
	outputDir := gen.OutputDir

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Simulate the school year by year and write per-year CSV directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator := generator.NewDecadeOrchestrator(seed, gen.BaselineYear, a.log)
			if err := orchestrator.LoadBaseline(baselineDir); err != nil {
				return fmt.Errorf("load baseline: %w", err)
			}

			a.log.Info("starting decade generation",
				zap.Int64("seed", seed),
				zap.Int("start_year", startYear),
				zap.Int("end_year", endYear),
			)
			if err := orchestrator.GenerateDecade(startYear, endYear, outputDir); err != nil {
				return fmt.Errorf("generate decade: %w", err)
			}

			a.log.Info("decade generation complete", zap.String("output_dir", outputDir))
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", seed, "master random seed")
	cmd.Flags().IntVar(&startYear, "start-year", startYear, "first simulated school year")
	cmd.Flags().IntVar(&endYear, "end-year", endYear, "last simulated school year (inclusive)")
	cmd.Flags().StringVar(&baselineDir, "baseline-dir", baselineDir, "directory holding the baseline CSVs")
	cmd.Flags().StringVar(&outputDir, "output-dir", outputDir, "directory for per-year output")
	return cmd
}

func (a *app) consolidateCmd() *cobra.Command {
	decadeDir := a.cfg.Generation.OutputDir
	outDir := a.cfg.Generation.ConsolidatedDir

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge the per-year directories into one deduplicated dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			consolidator := etl.NewConsolidator(decadeDir, outDir, a.log)
			if err := consolidator.Run(); err != nil {
				return fmt.Errorf("consolidate: %w", err)
			}
			a.log.Info("consolidation complete", zap.String("output_dir", outDir))
			return nil
		},
	}

	cmd.Flags().StringVar(&decadeDir, "decade-dir", decadeDir, "directory holding the per-year output")
	cmd.Flags().StringVar(&outDir, "output-dir", outDir, "directory for the consolidated dataset")
	return cmd
}

func (a *app) loadCmd() *cobra.Command {
	dir := a.cfg.Generation.ConsolidatedDir

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Upload the consolidated dataset to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.Open(a.cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			loader := etl.NewLoader(db,
				a.cfg.Load.BatchSize,
				a.cfg.Load.MaxRetries,
				a.cfg.Load.RetryBackoff,
				a.log,
			)
			report, err := loader.Load(ctx, dir)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}

			failed := report.TotalFailed()
			a.log.Info("load complete",
				zap.Int("inserted", report.TotalInserted()),
				zap.Int("failed", failed),
			)
			if failed > 0 {
				return fmt.Errorf("%d rows failed to load", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", dir, "directory holding the consolidated dataset")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	dir := a.cfg.Generation.ConsolidatedDir
	reportsDir := a.cfg.Reports.Dir

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run quality checks against the consolidated dataset and write reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			validator := etl.NewValidator(dir, a.log)
			report, err := validator.Run()
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			if err := validator.WriteReports(report, reportsDir); err != nil {
				return fmt.Errorf("write reports: %w", err)
			}

			if !report.Passed() {
				return fmt.Errorf("validation failed, see %s", reportsDir)
			}
			a.log.Info("validation passed", zap.String("reports_dir", reportsDir))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", dir, "directory holding the consolidated dataset")
	cmd.Flags().StringVar(&reportsDir, "reports-dir", reportsDir, "directory for validation reports")
	return cmd
}
