package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxlayout/pkg/cache"
	"github.com/matzehuels/boxlayout/pkg/pipeline"
	"github.com/matzehuels/boxlayout/pkg/server"
	"github.com/matzehuels/boxlayout/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	database string
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     envOr("ADDR", ":8080"),
		redisURL: envOr("REDIS_URL", ""),
		mongoURI: envOr("MONGO_URI", ""),
		database: envOr("MONGO_DATABASE", store.DefaultDatabase),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Layouts are cached in Redis when --redis-url is set and in memory otherwise.
Stored layouts go to MongoDB when --mongo-uri is set and to memory otherwise.
Flags default to the BOXLAYOUT_ADDR, BOXLAYOUT_REDIS_URL, BOXLAYOUT_MONGO_URI and
BOXLAYOUT_MONGO_DATABASE environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", opts.redisURL, "Redis URL for the shared cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB URI for stored layouts")
	cmd.Flags().StringVar(&opts.database, "mongo-database", opts.database, "MongoDB database name")

	return cmd
}

// openBackends connects the cache and store selected by opts.
func openBackends(ctx context.Context, opts serveOpts) (cache.Cache, store.Store, error) {
	var c cache.Cache = cache.NewMemoryCache()
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		c = rc
	}

	var st store.Store = store.NewMemoryStore()
	if opts.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, opts.mongoURI, opts.database)
		if err != nil {
			return nil, nil, withClose(fmt.Errorf("connect mongo: %w", err), c)
		}
		st = ms
	}
	return cache.Instrumented(c), st, nil
}

// withClose closes c after a failed setup step and reports both errors.
func withClose(err error, c io.Closer) error {
	return errors.Join(err, c.Close())
}

func backendName(remote string, fallback string) string {
	if remote != "" {
		return remote
	}
	return fallback
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	backend, st, err := openBackends(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, "api:"), c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(runner, st, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving layouts")
	printKeyValue("address", opts.addr)
	printKeyValue("cache", backendName(redactURL(opts.redisURL), "memory"))
	printKeyValue("store", backendName(redactURL(opts.mongoURI), "memory"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// redactURL hides the password of a connection URL for display.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid url)"
	}
	return u.Redacted()
}
