package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/press/internal/configloader"
	"github.com/yaklabco/press/internal/logging"
	"github.com/yaklabco/press/pkg/cache"
	"github.com/yaklabco/press/pkg/config"
)

// session is the resolved state shared by commands that compile manuscripts.
type session struct {
	ctx     context.Context
	workDir string
	cfg     *config.Config
	color   string
}

// loadSession resolves configuration with cliCfg as the highest layer and
// attaches the logger to the command context.
func loadSession(cmd *cobra.Command, flags *globalFlags, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(flags.color)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, &configError{fmt.Errorf("load configuration: %w", err)}
	}
	cfg := loadResult.Config

	if !flags.debug && cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return &session{
		ctx:     logging.WithLogger(ctx, logger),
		workDir: workDir,
		cfg:     cfg,
		color:   string(cfg.Color),
	}, nil
}

// openCache opens the result cache unless it is disabled. A cache that
// cannot be opened is logged and skipped.
func (s *session) openCache() *cache.Store {
	if !s.cfg.Cache.IsEnabled() {
		return nil
	}
	logger := logging.FromContext(s.ctx)

	path, err := s.cachePath()
	if err != nil {
		logger.Warn("cache disabled", logging.FieldError, err)
		return nil
	}
	store, err := cache.Open(s.ctx, path)
	if err != nil {
		logger.Warn("cache disabled", logging.FieldPath, path, logging.FieldError, err)
		return nil
	}
	logger.Debug("cache opened", logging.FieldCache, path)
	return store
}

func (s *session) cachePath() (string, error) {
	return resolveCachePath(s.cfg.Cache.Path, s.workDir)
}

func resolveCachePath(configured, workDir string) (string, error) {
	if configured != "" {
		if !filepath.IsAbs(configured) {
			configured = filepath.Join(workDir, configured)
		}
		return configured, nil
	}
	dir, err := configloader.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.DefaultCacheDB), nil
}
