package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framescope/pkg/errors"
	fsio "github.com/matzehuels/framescope/pkg/io"
	"github.com/matzehuels/framescope/pkg/transport/redispass"
)

// publishCommand sends a frames file to a Redis channel, where a
// "framescope serve --redis-addr" process picks it up.
func (c *CLI) publishCommand() *cobra.Command {
	var redisAddr, channel string

	cmd := &cobra.Command{
		Use:   "publish [frames.json]",
		Short: "Publish a frames file as a layout pass on Redis",
		Example: `  framescope publish card.json --redis-addr localhost:6379
  my-app --dump-frames | framescope publish - --redis-addr localhost:6379`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if redisAddr == "" {
				redisAddr = cfg.Redis.Addr
			}
			if channel == "" {
				channel = cfg.Redis.Channel
			}
			if redisAddr == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--redis-addr is required (or set [redis] addr in the config)")
			}
			return c.runPublish(cmd.Context(), args[0], redisAddr, channel)
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis server address")
	cmd.Flags().StringVar(&channel, "channel", "", "Redis channel (default from config)")

	return cmd
}

func (c *CLI) runPublish(ctx context.Context, input, redisAddr, channel string) error {
	f, err := fsio.ImportFrames(input)
	if err != nil {
		return fmt.Errorf("load frames %s: %w", input, err)
	}

	client, err := redispass.NewClient(ctx, redisAddr)
	if err != nil {
		return err
	}
	defer client.Close()

	n, err := redispass.NewPublisher(client, channel, c.Logger).Publish(ctx, f)
	if err != nil {
		return err
	}
	if n == 0 {
		printWarning("no inspector is subscribed to %s", channel)
		return nil
	}
	printSuccess("Published %d nodes to %s (%d receivers)", len(f.Nodes), channel, n)
	return nil
}
