package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/switchpuzzle/internal/server"
	"github.com/matzehuels/switchpuzzle/pkg/cache"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen    string
		cacheURL  string
		noCache   bool
		workers   int
		maxRoutes int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz      liveness probe
  GET  /version      build information
  POST /v1/solve     evaluate a JSON puzzle (?format=json|text|dot, ?limit=N)
  POST /v1/apply     apply one operation to an arrangement

Reports are cached in Redis when --cache-url (or cache_url in the config
file) is set, otherwise in the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("listen") && c.Config.Listen != "" {
				listen = c.Config.Listen
			}
			if cmd.Flags().Changed("cache-url") {
				c.Config.CacheURL = cacheURL
			}
			if !cmd.Flags().Changed("workers") {
				workers = c.Config.Workers
			}

			runner, err := c.newRunner(noCache, workers)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			if rc, ok := runner.Cache.(*cache.RedisCache); ok {
				if err := rc.Ping(ctx); err != nil {
					c.Logger.Warn("redis unreachable, requests will evaluate without cache", "error", err)
				}
			}

			srv := server.New(runner, c.Logger, server.Config{
				MaxRoutes:      maxRoutes,
				RequestTimeout: timeout,
			})
			printInfo("Listening on %s", StyleHighlight.Render(listen))
			return srv.ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", server.DefaultAddr, "address to listen on")
	cmd.Flags().StringVar(&cacheURL, "cache-url", "", "redis:// URL for the report cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&workers, "workers", 0, "evaluation workers per request (0 = one per CPU)")
	cmd.Flags().IntVar(&maxRoutes, "max-routes", server.DefaultMaxRoutes, "maximum routes evaluated per request")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")

	return cmd
}
