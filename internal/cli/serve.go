package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snaker/internal/config"
	"github.com/matzehuels/snaker/internal/server"
	"github.com/matzehuels/snaker/pkg/storage"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		store   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve drawings over HTTP",
		Long: `Serve drawings over HTTP.

POST /api/drawings creates a drawing from JSON options, GET /api/drawings/{id}
returns it and GET /api/drawings/{id}.{format} renders it. The step stream at
/api/drawings/{id}/stream replays the fill over a websocket.

Drawings are kept in memory unless the config selects the mongo store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if store == "" {
				store = c.Config.Server.Store
			}
			return c.runServe(cmd.Context(), addr, store, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&store, "store", "", "drawing store: memory (default), mongo")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, store string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx, store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close(context.WithoutCancel(ctx))

	srv := server.New(runner, st,
		server.WithLogger(c.Logger),
		server.WithDefaults(c.Config.PipelineOptions()),
		server.WithInterval(c.Config.Animate.Interval),
	)

	printSuccess("Serving drawings")
	printKeyValue("address", addr)
	printKeyValue("store", store)
	printKeyValue("cache", c.cacheBackend(noCache))
	return srv.ListenAndServe(ctx, addr)
}

// newStore opens the named drawing store.
func (c *CLI) newStore(ctx context.Context, name string) (storage.Store, error) {
	switch name {
	case config.StoreMongo:
		return storage.NewMongoStore(ctx, c.Config.Server.MongoURI, c.Config.Server.MongoDatabase)
	case config.StoreMemory, "":
		return storage.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store %q (must be %s or %s)", name, config.StoreMemory, config.StoreMongo)
}

func (c *CLI) cacheBackend(noCache bool) string {
	if noCache {
		return config.CacheNone
	}
	return c.Config.Cache.Backend
}
