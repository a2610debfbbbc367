package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"marquee/internal/api"
	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/services"
	"marquee/internal/upstream"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	cache *api.CacheHandle
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openCache opens the configured list cache. A disabled cache yields nil
// without error.
func (c *commandContext) openCache() (*api.CacheHandle, error) {
	if c.cache != nil {
		return c.cache, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	handle, err := api.OpenCache(cfg, logger)
	if errors.Is(err, api.ErrCacheDisabled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.cache = handle
	return handle, nil
}

func (c *commandContext) catalogService() (*api.CatalogService, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	client, err := upstream.New(cfg.Upstream.BaseURL,
		upstream.WithTimeout(cfg.RequestTimeout()),
		upstream.WithRetryAttempts(cfg.Upstream.RetryAttempts),
		upstream.WithUserAgent(cfg.Upstream.UserAgent),
		upstream.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	handle, err := c.openCache()
	if err != nil {
		logging.WarnWithContext(logger, "list cache unavailable; continuing without it", "cache_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run `marquee doctor` to check the cache directory"),
		)
		handle = nil
	}
	if handle == nil {
		return api.NewCatalogService(cfg, client, nil, logger), nil
	}
	return api.NewCatalogService(cfg, client, handle, logger), nil
}

func (c *commandContext) close() error {
	if c.cache == nil {
		return nil
	}
	err := c.cache.Close()
	c.cache = nil
	return err
}

// requestContext tags the command context with a fresh correlation id.
func requestContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.EnsureRequestID(ctx)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
