package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridwatch/riskgen/pkg/catalog"
	"github.com/gridwatch/riskgen/pkg/dataset"
	"github.com/gridwatch/riskgen/pkg/report"
	"github.com/gridwatch/riskgen/pkg/scenario"
	"github.com/gridwatch/riskgen/pkg/summary"
)

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func runGenerate(sc scenario.Scenario, debug bool) error {
	logger, err := newLogger(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Debug("resolved scenario",
		zap.Int64("seed", sc.Seed),
		zap.String("start", sc.Start),
		zap.String("end", sc.End),
		zap.String("out", sc.OutputDir))

	tables, err := dataset.Generate(sc)
	if err != nil {
		return err
	}
	logger.Info("dataset generated",
		zap.Int("observations", len(tables.Observations)),
		zap.Int("assets", len(tables.Assets)),
		zap.Int("months", tables.MonthCount))

	historyPath, thresholdsPath, err := tables.Write(sc.OutputDir)
	if err != nil {
		return fmt.Errorf("writing tables: %w", err)
	}
	logger.Info("tables written",
		zap.String("history", historyPath),
		zap.String("thresholds", thresholdsPath))

	printFleetSummary(summary.Aggregate(tables.Observations))
	return nil
}

func runValidate(sc scenario.Scenario) error {
	combined := sc.Validate()
	combined.Merge(catalog.Validate(catalog.Profiles()))
	combined.Merge(report.ValidateBindings(report.DefaultModel(), report.DefaultBindings()))

	printValidationReport(combined)

	if !combined.Valid {
		os.Exit(1)
	}
	return nil
}

func runSummary(sc scenario.Scenario) error {
	tables, err := dataset.Generate(sc)
	if err != nil {
		return err
	}
	printFleetSummary(summary.Aggregate(tables.Observations))
	return nil
}

func runModel(sc scenario.Scenario, debug bool) error {
	logger, err := newLogger(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	model := report.DefaultModel()

	combined := report.ValidateBindings(model, report.DefaultBindings())

	// Check the model against the live CSV header when a generated table is
	// already present.
	historyPath := filepath.Join(sc.OutputDir, dataset.HistoryFileName)
	if header, _, err := dataset.ReadTable(historyPath); err == nil {
		combined.Merge(report.ValidateSource(model, report.HistoryTable, header))
		logger.Debug("checked model against generated table", zap.String("path", historyPath))
	} else {
		logger.Debug("no generated table to check against", zap.String("path", historyPath))
	}

	printValidationReport(combined)
	if !combined.Valid {
		return fmt.Errorf("model validation failed: %s", combined.Summary)
	}

	modelDir := filepath.Join(sc.OutputDir, "model")
	if err := model.Write(modelDir); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	logger.Info("model written", zap.String("dir", modelDir))
	return nil
}
