package cli

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/types"
)

type contextKey struct{}

type injected struct {
	app   *app.App
	owner types.OwnerID
}

// WithApp returns a context carrying an already opened App. Commands run
// with it use the App instead of opening their own, and leave it open.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, contextKey{}, injected{app: a})
}

// WithOwner overrides the configured owner for commands run with ctx
func WithOwner(ctx context.Context, owner types.OwnerID) context.Context {
	in, _ := ctx.Value(contextKey{}).(injected)
	in.owner = owner
	return context.WithValue(ctx, contextKey{}, in)
}

// GetCLIFromContext returns the CLI for a command. The caller must Close it.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	in, _ := ctx.Value(contextKey{}).(injected)

	if in.app != nil {
		owner := in.owner
		if owner == "" {
			owner = in.app.Config().OwnerID()
		}
		return &CLI{App: in.app, owner: owner}, nil
	}

	c, err := NewCLI(ctx)
	if err != nil {
		return nil, err
	}
	if in.owner != "" {
		c.owner = in.owner
	}
	return c, nil
}
