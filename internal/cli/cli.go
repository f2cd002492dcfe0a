package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/types"
)

// CLI represents the CLI application context
type CLI struct {
	App   *app.App // Application container with services
	owner types.OwnerID
	owned bool // App was opened here and must be closed here
}

// NewCLI loads the configuration and opens the store plus, when reachable,
// the event transport
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{
		App:   application,
		owner: cfg.OwnerID(),
		owned: true,
	}, nil
}

// Owner returns the owner whose board commands act on
func (c *CLI) Owner() types.OwnerID {
	return c.owner
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
