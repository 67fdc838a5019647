package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwiseapp/shelfwise-server/internal/config"
	"github.com/shelfwiseapp/shelfwise-server/internal/logger"
	"github.com/shelfwiseapp/shelfwise-server/internal/store"
)

func TestContainerShutdownClosesStore(t *testing.T) {
	injector := do.New()

	cfg := &config.Config{}
	cfg.Data.BasePath = t.TempDir()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger.New(logger.Config{Environment: "development"}))
	do.Provide(injector, ProvideStore)

	handle := do.MustInvoke[*StoreHandle](injector)

	// Store answers before shutdown.
	_, err := handle.GetUser(context.Background(), "user-nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_ = injector.Shutdown()

	// The container closed the Shutdownable handle; the database no longer
	// answers and no explicit close is needed afterwards.
	_, err = handle.GetUser(context.Background(), "user-nope")
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrNotFound))

	// A shut-down container hands out no services either.
	_, err = do.Invoke[*StoreHandle](injector)
	assert.Error(t, err)
}
