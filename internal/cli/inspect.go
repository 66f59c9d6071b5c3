package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/framescope/pkg/config"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/render/term"
	"github.com/matzehuels/framescope/pkg/transport/redispass"
)

// inspectCommand opens the interactive terminal inspector.
func (c *CLI) inspectCommand() *cobra.Command {
	var selectID, focusID, redisAddr, channel string

	cmd := &cobra.Command{
		Use:   "inspect [frames.json]",
		Short: "Inspect a frames file interactively in the terminal",
		Long: `Inspect a frames file interactively in the terminal.

Click an element to select it and show the distances to its neighbours.
Right-click a second element to measure directly between the two. Clicking
the selected element again clears the selection.

With --redis-addr the inspector follows passes published on the channel,
keeping the selection on elements that survive each pass.`,
		Example: `  framescope inspect card.json
  framescope inspect card.json --redis-addr localhost:6379`,
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
			return c.runInspect(cmd.Context(), cfg, args[0], selectID, focusID, redisAddr, channel)
		},
	}

	cmd.Flags().StringVar(&selectID, "select", "", "element selected at start")
	cmd.Flags().StringVar(&focusID, "focus", "", "element focused at start")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "follow live passes from this Redis server")
	cmd.Flags().StringVar(&channel, "channel", "", "Redis channel (default from config)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, cfg config.Config, input, selectID, focusID, redisAddr, channel string) error {
	s, err := c.openInspection(ctx, cfg, input)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.selectNodes(ctx, selectID, focusID); err != nil {
		return err
	}

	var passes chan int
	if redisAddr != "" {
		client, err := redispass.NewClient(ctx, redisAddr)
		if err != nil {
			return err
		}
		defer client.Close()

		passes = make(chan int, 1)
		cancel := s.rec.Subscribe(func(set node.Set) {
			select {
			case passes <- set.Len():
			default:
			}
		})
		defer cancel()

		go func() {
			if err := redispass.NewSubscriber(client, channel, s.rec, c.Logger).Run(ctx); err != nil {
				c.Logger.Error("redis subscriber stopped", "err", err)
			}
		}()
	}

	cell := term.Grid{CellWidth: cfg.Terminal.CellWidth, CellHeight: cfg.Terminal.CellHeight}
	model := NewInspectModel(ctx, s.ctrl, s.frames.Viewport(), cell, passes)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("inspector: %w", err)
	}
	return nil
}
