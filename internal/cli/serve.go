package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/framescope/pkg/cache"
	"github.com/matzehuels/framescope/pkg/config"
	fsio "github.com/matzehuels/framescope/pkg/io"
	"github.com/matzehuels/framescope/pkg/recorder"
	"github.com/matzehuels/framescope/pkg/transport/httpapi"
	"github.com/matzehuels/framescope/pkg/transport/redispass"
)

// serveOpts holds the command-line flags for the serve command. Empty values
// fall back to the [server] and [redis] config sections.
type serveOpts struct {
	addr      string
	redisAddr string
	channel   string
	frames    string
	noCache   bool
}

// serveCommand creates the serve command for the HTTP debug server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inspector over HTTP",
		Long: `Serve the inspector over HTTP.

Passes arrive as POST /v1/passes requests, or from a Redis channel when
--redis-addr is set. Gestures, selection and toggles are JSON endpoints;
GET /v1/overlay.svg and GET /v1/hierarchy.dot show the current state.`,
		Example: `  framescope serve --frames card.json
  framescope serve --addr :7070 --redis-addr localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, opts.merged(cfg))
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config: 127.0.0.1:7070)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "subscribe to passes on this Redis server")
	cmd.Flags().StringVar(&opts.channel, "channel", "", "Redis channel (default from config: "+config.DefaultChannel+")")
	cmd.Flags().StringVar(&opts.frames, "frames", "", "frames file to publish before serving")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the hierarchy cache")

	return cmd
}

// merged fills unset flags from cfg.
func (o serveOpts) merged(cfg config.Config) serveOpts {
	if o.addr == "" {
		o.addr = cfg.Server.Addr
	}
	if o.redisAddr == "" {
		o.redisAddr = cfg.Redis.Addr
	}
	if o.channel == "" {
		o.channel = cfg.Redis.Channel
	}
	return o
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, opts serveOpts) error {
	ctrl, err := c.newController(cfg)
	if err != nil {
		return err
	}
	rec := recorder.New(c.Logger)

	var (
		client *redis.Client
		sub    *redispass.Subscriber
	)
	if opts.redisAddr != "" {
		spinner := newSpinnerWithContext(ctx, "Connecting to "+opts.redisAddr+"...")
		spinner.Start()
		client, err = redispass.NewClient(ctx, opts.redisAddr)
		if err != nil {
			if spinner.Cancelled() {
				spinner.Stop()
				return ctx.Err()
			}
			spinner.StopWithError("Redis unavailable at " + opts.redisAddr)
			return err
		}
		spinner.StopWithSuccess("Connected to " + opts.redisAddr)
		defer client.Close()
		sub = redispass.NewSubscriber(client, opts.channel, rec, c.Logger)
	}

	rc := c.serveCache(opts.noCache, client)
	defer rc.Close()

	srv := httpapi.New(rec, ctrl, c.Logger, httpapi.WithCache(rc))
	defer srv.Close()

	if opts.frames != "" {
		f, err := fsio.ImportFrames(opts.frames)
		if err != nil {
			return fmt.Errorf("load frames %s: %w", opts.frames, err)
		}
		srv.SetViewport(f.Viewport())
		rec.Publish(ctx, f.Set().Nodes())
		printInfo("Loaded %s (%d nodes)", opts.frames, len(f.Nodes))
	}

	if sub != nil {
		sub.OnFrames = func(f fsio.Frames) {
			if f.Width > 0 && f.Height > 0 {
				srv.SetViewport(f.Viewport())
			}
		}
		go func() {
			if err := sub.Run(ctx); err != nil {
				c.Logger.Error("redis subscriber stopped", "err", err)
			}
		}()
		printInfo("Following %s on %s", opts.channel, opts.redisAddr)
	}

	printSuccess("Inspector at http://%s/v1/overlay.svg", opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the hierarchy cache for serve. Diagrams are shared
// through Redis when a client is connected.
func (c *CLI) serveCache(noCache bool, client *redis.Client) cache.Cache {
	if client != nil && !noCache {
		return cache.NewRedisCache(client, "")
	}
	return c.newCache(noCache)
}
