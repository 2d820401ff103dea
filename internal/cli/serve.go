package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawkit/pkg/server"
	"github.com/matzehuels/drawkit/pkg/store"
)

// envMongoURI selects a MongoDB scene store for serve.
const envMongoURI = "DRAWKIT_MONGO_URI"

// serveCommand creates the serve command for the preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		database string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve rendered scenes over HTTP",
		Long: `Run the preview server over a directory of scene files (default: the current
directory), or over a MongoDB collection when --mongo is set.

  GET /scenes                             list scenes
  GET /scenes/<name>.png?frame=3&scale=2  render a frame
  GET /scenes/<name>/frames/<n>.png       one animation frame
  GET /scenes/<name>.svg?graph=0          Graphviz export of a graph

Set DRAWKIT_REDIS_URL to share the render cache between server instances.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return c.runServe(cmd.Context(), dir, addr, mongoURI, database, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo", os.Getenv(envMongoURI), "MongoDB URI for the scene store (env "+envMongoURI+")")
	cmd.Flags().StringVar(&database, "database", store.DefaultMongoDatabase, "MongoDB database")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, dir, addr, mongoURI, database string, noCache bool) error {
	var (
		st  store.Store
		err error
	)
	if mongoURI != "" {
		st, err = store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI, Database: database})
	} else {
		st, err = store.NewDirStore(dir)
	}
	if err != nil {
		return fmt.Errorf("open scene store: %w", err)
	}
	defer st.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	printInfo("Serving scenes on http://%s", addr)
	return server.New(st, runner, c.Logger).ListenAndServe(ctx, addr)
}
