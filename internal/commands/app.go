package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/anomaly"
	"github.com/finsight-dev/finsight/internal/config"
	"github.com/finsight-dev/finsight/internal/ledger"
	"github.com/finsight-dev/finsight/internal/logger"
)

// configFile is the project configuration filename.
const configFile = "finsight.yaml"

// app bundles the loaded project state every command needs.
type app struct {
	root string
	cfg  *config.Config
	env  *config.Env
	log  zerolog.Logger
	svc  *ledger.Service
}

// loadApp resolves the project root and loads config, environment, logger,
// and the ledger service.
func loadApp(dir string) (*app, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, configFile))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", configFile, err)
	}

	e, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	return &app{
		root: root,
		cfg:  cfg,
		env:  e,
		log:  logger.New(e.LogLevel),
		svc:  ledger.NewService(root),
	}, nil
}

// anomalyOptions converts the config thresholds to detector options.
func (a *app) anomalyOptions() anomaly.Options {
	opts := anomaly.DefaultOptions()
	if a.cfg.Anomaly.ThresholdMultiplier > 0 {
		opts.ThresholdMultiplier = decimal.NewFromFloat(a.cfg.Anomaly.ThresholdMultiplier)
	}
	if a.cfg.Anomaly.MediumRatio > 0 {
		opts.MediumRatio = decimal.NewFromFloat(a.cfg.Anomaly.MediumRatio)
	}
	if a.cfg.Anomaly.HighRatio > 0 {
		opts.HighRatio = decimal.NewFromFloat(a.cfg.Anomaly.HighRatio)
	}
	return opts
}

// horizonDays returns the configured forecast horizon with a sane floor.
func (a *app) horizonDays() int {
	if a.cfg.Forecast.DefaultHorizonDays > 0 {
		return a.cfg.Forecast.DefaultHorizonDays
	}
	return 30
}
