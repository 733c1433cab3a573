package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/cache"
	"github.com/matzehuels/mindlayout/pkg/pipeline"
	"github.com/matzehuels/mindlayout/pkg/server"
	"github.com/matzehuels/mindlayout/pkg/store"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr      string
	redisURL  string
	keyPrefix string
	mongoURI  string
	mongoDB   string
	noCache   bool
	timeout   time.Duration
	maxBody   int64
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Layouts and artifacts are cached in Redis when --redis is given, else in
the local cache directory. Saved maps live in MongoDB when --mongo-uri is
given, else in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the shared cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", appName+":", "prefix for Redis cache keys")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for saved maps")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")

	return cmd
}

// runServe wires the cache and store backends and serves until ctx ends.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newServeRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(sctx); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	srv := server.New(server.Config{
		Addr:           opts.addr,
		Runner:         runner,
		Store:          st,
		Logger:         c.Logger,
		MaxBodyBytes:   opts.maxBody,
		RequestTimeout: opts.timeout,
	})
	return srv.ListenAndServe(ctx)
}

// newServeRunner picks Redis, the file cache or no cache.
func (c *CLI) newServeRunner(ctx context.Context, opts serveOpts) (*pipeline.Runner, error) {
	if opts.noCache || opts.redisURL == "" {
		return c.newRunner(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("using redis cache", "prefix", opts.keyPrefix)
	return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, opts.keyPrefix), c.Logger), nil
}

// newStore picks MongoDB or the in-memory store.
func newStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
}
