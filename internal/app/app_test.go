package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/drag"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Owner = "alice"
	cfg.Events.Socket = filepath.Join(t.TempDir(), "none.sock")
	return cfg
}

func TestNew(t *testing.T) {
	a := New(testutil.SetupTestDB(t), testConfig(t))
	require.NotNil(t, a.CardService)
	assert.Nil(t, a.Events())
	assert.Equal(t, "alice", a.Config().Owner)
}

func TestNewController_UsesConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Lanes = []string{"todo", "done"}
	cfg.Board.ReadOnly = true
	a := New(testutil.SetupTestDB(t), cfg)

	ctrl := a.NewController()
	assert.Equal(t, models.LaneSet{"todo", "done"}, ctrl.Lanes())
	assert.True(t, ctrl.ReadOnly())
	assert.Equal(t, "alice", string(ctrl.Owner()))
}

func TestServiceAndControllerShareStore(t *testing.T) {
	a := New(testutil.SetupTestDB(t), testConfig(t))
	ctx := context.Background()

	first, err := a.CardService.CreateCard(ctx, cardservice.CreateCardRequest{Owner: "alice", Lane: models.LaneBacklog, Title: "one"})
	require.NoError(t, err)
	_, err = a.CardService.CreateCard(ctx, cardservice.CreateCardRequest{Owner: "alice", Lane: models.LaneBacklog, Title: "two"})
	require.NoError(t, err)

	ctrl := a.NewController()
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.Move(ctx, first.ID, drag.OverLane(models.LaneDone)))

	assert.Equal(t, []string{"two"}, testutil.LaneTitles(t, a.Repo(), "alice", models.LaneBacklog))
	assert.Equal(t, []string{"one"}, testutil.LaneTitles(t, a.Repo(), "alice", models.LaneDone))
	assert.NoError(t, a.Close())
}

func TestConnectPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Events.Disabled = true
		assert.Nil(t, ConnectPublisher(ctx, cfg))
	})

	t.Run("daemon missing", func(t *testing.T) {
		assert.Nil(t, ConnectPublisher(ctx, testConfig(t)))
	})

	t.Run("daemon running", func(t *testing.T) {
		_, socket := testutil.SetupTestDaemon(t)
		cfg := testConfig(t)
		cfg.Events.Socket = socket
		p := ConnectPublisher(ctx, cfg)
		require.NotNil(t, p)
		assert.IsType(t, &events.Client{}, p)
		assert.NoError(t, p.Close())
	})

	t.Run("redis", func(t *testing.T) {
		s := miniredis.RunT(t)
		cfg := testConfig(t)
		cfg.Events.RedisURL = "redis://" + s.Addr()
		p := ConnectPublisher(ctx, cfg)
		require.NotNil(t, p)
		assert.IsType(t, &events.RedisPublisher{}, p)
		assert.NoError(t, p.Close())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		s := miniredis.RunT(t)
		addr := s.Addr()
		s.Close()
		cfg := testConfig(t)
		cfg.Events.RedisURL = "redis://" + addr
		assert.Nil(t, ConnectPublisher(ctx, cfg))
	})
}

func TestNew_OptionsOverrideConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Board.ReadOnly = true
	a := New(testutil.SetupTestDB(t), cfg, WithReadOnly(false), WithActivationDistance(0), WithWriteConcurrency(1))

	ctrl := a.NewController()
	assert.False(t, ctrl.ReadOnly())
	assert.True(t, cfg.Board.ReadOnly, "config is left untouched")

	ctx := context.Background()
	created, err := a.CardService.CreateCard(ctx, cardservice.CreateCardRequest{Owner: "alice", Lane: models.LaneInbox, Title: "one"})
	require.NoError(t, err)
	require.NoError(t, ctrl.Load(ctx))

	// Zero distance: the first move past the press starts the drag
	ctrl.PointerDown(created.ID, 0, 0)
	_, err = ctrl.PointerMove(1, 0, drag.OverLane(models.LaneDone))
	require.NoError(t, err)
	assert.Equal(t, drag.Active, ctrl.State())
	require.NoError(t, ctrl.DragCancel())
}
