package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratakeys/stratakeys/internal/server"
	"github.com/stratakeys/stratakeys/pkg/cache"
	"github.com/stratakeys/stratakeys/pkg/config"
)

// newServeCmd creates the serve command: expose layouts over HTTP.
func newServeCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve keyboard layouts over HTTP",
		Long: `Serve starts the stateless layout API. Endpoints:

  GET /healthz     liveness and version
  GET /v1/layout   compute a layout (json or svg)
  GET /v1/resolve  hit-test a point against a layout

The cache backend (none, file, or redis) comes from the tuning file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, addr, cmd.Flags().Changed("addr"))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML tuning file")
	cmd.Flags().StringVar(&addr, "addr", ":8630", "listen address")
	return cmd
}

func runServe(ctx context.Context, configPath, addr string, addrChanged bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !addrChanged && cfg.Server.Addr != "" {
		addr = cfg.Server.Addr
	}

	backend, err := newCacheBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	srv := server.New(
		server.WithLogger(logger),
		server.WithCache(backend),
	)
	printInfo("Serving layouts on %s (cache: %s)", addr, cacheName(cfg))
	return srv.ListenAndServe(ctx, addr)
}

// newCacheBackend builds the cache backend the tuning file selects.
func newCacheBackend(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Server.Cache {
	case "", "none":
		return cache.NewNullCache(), nil
	case "file":
		dir := cfg.Server.CacheDir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Server.RedisAddr})
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Server.Cache)
	}
}

func cacheName(cfg config.Config) string {
	if cfg.Server.Cache == "" {
		return "none"
	}
	return cfg.Server.Cache
}
