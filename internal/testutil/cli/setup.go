// Package cli holds helpers for command tests. It lives apart from testutil
// so service tests can import testutil without pulling in the app.
package cli

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Owner is the owner test apps are configured for
const Owner types.OwnerID = "alice"

// SetupCLITest creates an in-memory store and an App on top of it with no
// event transport
func SetupCLITest(t *testing.T) (*sqlx.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := config.Default()
	cfg.Owner = string(Owner)
	return db, app.New(db, cfg)
}
