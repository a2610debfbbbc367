package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration utilities",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

// initTarget resolves where `config init` writes, refusing to clobber an
// existing file unless overwrite is set.
func initTarget(flag string, overwrite bool) (string, error) {
	var (
		target string
		err    error
	)
	if flag = strings.TrimSpace(flag); flag == "" {
		target, err = config.DefaultConfigPath()
	} else {
		target, err = config.ExpandPath(flag)
	}
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if overwrite {
		return target, nil
	}
	switch _, err := os.Stat(target); {
	case err == nil:
		return "", fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("check config path: %w", err)
	}
	return target, nil
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath, overwrite)
			if err != nil {
				return err
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			// Read the sample back so the summary shows resolved paths and
			// any environment overrides in effect.
			cfg, _, _, err := config.Load(target)
			if err != nil {
				return fmt.Errorf("load sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			describeConfig(out, cfg)
			fmt.Fprintln(out, "Edit [upstream] base_url (or export MARQUEE_API_BASE_URL) to point at your catalog API.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			describeConfig(out, cfg)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func describeConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "Upstream:    %s (timeout %s, %d attempt(s))\n",
		cfg.Upstream.BaseURL, cfg.RequestTimeout(), cfg.Upstream.RetryAttempts)
	switch {
	case !cfg.Cache.Enabled:
		fmt.Fprintln(out, "Cache:       disabled")
	case cfg.Cache.Backend == config.CacheBackendMemory:
		fmt.Fprintf(out, "Cache:       memory (ttl %s)\n", cfg.CacheTTL())
	default:
		fmt.Fprintf(out, "Cache:       %s at %s (ttl %s)\n", cfg.Cache.Backend, cfg.Cache.Path, cfg.CacheTTL())
	}
	if len(cfg.Cache.StaleFallback) > 0 {
		fmt.Fprintf(out, "Stale OK:    %s\n", strings.Join(cfg.Cache.StaleFallback, ", "))
	}
	if cfg.Logging.Dir != "" {
		fmt.Fprintf(out, "Logs:        %s (%s, %s)\n", cfg.Logging.Dir, cfg.Logging.Format, cfg.Logging.Level)
	}
}
