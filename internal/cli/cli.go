// Package cli implements the framescope command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framescope/pkg/config"
	"github.com/matzehuels/framescope/pkg/inspector"
	fsio "github.com/matzehuels/framescope/pkg/io"
	"github.com/matzehuels/framescope/pkg/recorder"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "framescope"

	// hierarchyTTL is how long rendered hierarchy diagrams stay cached.
	hierarchyTTL = 7 * 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads --config, or the default file when the flag is unset.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newController builds a controller from the [inspector] and [style]
// sections.
func (c *CLI) newController(cfg config.Config) (*inspector.Controller, error) {
	tb, err := cfg.TieBreak()
	if err != nil {
		return nil, err
	}
	return inspector.New(c.Logger,
		inspector.WithTieBreak(tb),
		inspector.WithStyle(inspector.StyleFromConfig(cfg.Style)),
		inspector.WithEnabled(cfg.Inspector.Enabled),
	), nil
}

// =============================================================================
// Inspection Sessions
// =============================================================================

// inspection is a recorder and a controller following it, loaded with one
// pass from a frames file.
type inspection struct {
	rec    *recorder.Recorder
	ctrl   *inspector.Controller
	frames fsio.Frames
	stop   func()
}

func (s *inspection) Close() { s.stop() }

// openInspection loads the frames file at path and publishes it.
func (c *CLI) openInspection(ctx context.Context, cfg config.Config, path string) (*inspection, error) {
	frames, err := fsio.ImportFrames(path)
	if err != nil {
		return nil, fmt.Errorf("load frames %s: %w", path, err)
	}
	ctrl, err := c.newController(cfg)
	if err != nil {
		return nil, err
	}
	rec := recorder.New(c.Logger)
	stop := ctrl.Follow(ctx, rec)
	rec.Publish(ctx, frames.Set().Nodes())
	c.Logger.Debug("loaded frames", "path", path, "nodes", len(frames.Nodes))
	return &inspection{rec: rec, ctrl: ctrl, frames: frames, stop: stop}, nil
}

// selectNodes applies --select and --focus. Both empty leaves the
// controller idle.
func (s *inspection) selectNodes(ctx context.Context, selectID, focusID string) error {
	if selectID == "" && focusID == "" {
		return nil
	}
	if _, err := s.ctrl.OnSelectionChanged(ctx, selectID, focusID); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/framescope/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath derives an output file from the input frames file when no
// explicit output is given: card.json becomes card.<suffix>.
func outputPath(output, input, suffix string) string {
	if output != "" {
		return output
	}
	if input == "-" {
		input = "frames.json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + suffix
}
