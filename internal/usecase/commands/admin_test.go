//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/usecase/commands"
	"chatcart/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	commands commands.AdminCommands
	ledger   *inventory.Ledger
	store    *catalog.Store
	loader   *catalog.StaticLoader
	notifier *captureNotifier
}

func newAdminFixture(t *testing.T, loaded []catalog.Product) *adminFixture {
	t.Helper()

	ledger := inventory.NewLedger(nil)
	ledger.Register("SKU-A", 5)

	store := catalog.NewStore(catalog.NewSnapshot(
		[]catalog.Product{builder.NewProductBuilder().WithSKU("SKU-A").MustBuild()}, nil,
	))
	loader := catalog.NewStaticLoader(loaded, []catalog.OfferRule{builder.NewOfferRuleBuilder().MustBuild()})
	notifier := newCaptureNotifier()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &adminFixture{
		commands: commands.NewAdminCommands(ledger, store, loader, notifier, logger, 3),
		ledger:   ledger,
		store:    store,
		loader:   loader,
		notifier: notifier,
	}
}

func TestAdminAdjustStock(t *testing.T) {
	t.Run("replenishment raises on-hand", func(t *testing.T) {
		f := newAdminFixture(t, nil)

		level, err := f.commands.AdjustStock(context.Background(), "SKU-A", 10, "delivery")
		require.NoError(t, err)
		assert.Equal(t, 15, level.OnHand)
	})

	t.Run("unknown sku", func(t *testing.T) {
		f := newAdminFixture(t, nil)
		_, err := f.commands.AdjustStock(context.Background(), "SKU-GHOST", 5, "delivery")
		assert.True(t, errs.Is(err, errs.ErrUnknownSKU))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		f := newAdminFixture(t, nil)
		_, err := f.commands.AdjustStock(context.Background(), "SKU-A", 0, "delivery")
		assert.ErrorIs(t, err, errs.ErrNonPositiveQty)
	})

	t.Run("still-low stock re-alerts after replenishment", func(t *testing.T) {
		f := newAdminFixture(t, nil)

		// SKU-B enters at 1 on hand, below the threshold of 3
		f.ledger.Register("SKU-B", 0)
		_, err := f.commands.AdjustStock(context.Background(), "SKU-B", 1, "partial delivery")
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			_, ok := f.notifier.lowStockFor("SKU-B")
			return ok
		}, time.Second, 10*time.Millisecond)
	})
}

func TestAdminReloadCatalog(t *testing.T) {
	t.Run("swaps the snapshot and registers new skus", func(t *testing.T) {
		loaded := []catalog.Product{
			builder.NewProductBuilder().WithSKU("SKU-A").MustBuild(),
			builder.NewProductBuilder().WithSKU("SKU-NEW").WithStock(7).MustBuild(),
		}
		f := newAdminFixture(t, loaded)

		products, rules, err := f.commands.ReloadCatalog(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, products)
		assert.Equal(t, 1, rules)

		_, ok := f.store.Current().Product("SKU-NEW")
		assert.True(t, ok)

		level, err := f.ledger.Level("SKU-NEW")
		require.NoError(t, err)
		assert.Equal(t, 7, level.OnHand)
	})

	t.Run("reload preserves live counts for existing skus", func(t *testing.T) {
		loaded := []catalog.Product{
			builder.NewProductBuilder().WithSKU("SKU-A").WithStock(100).MustBuild(),
		}
		f := newAdminFixture(t, loaded)

		_, err := f.ledger.Reserve("SKU-A", 2)
		require.NoError(t, err)

		_, _, err = f.commands.ReloadCatalog(context.Background())
		require.NoError(t, err)

		level, err := f.ledger.Level("SKU-A")
		require.NoError(t, err)
		assert.Equal(t, 5, level.OnHand)
		assert.Equal(t, 2, level.Reserved)
	})

	t.Run("unreachable source keeps the current snapshot", func(t *testing.T) {
		f := newAdminFixture(t, nil)
		before := f.store.Current()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		cmds := commands.NewAdminCommands(f.ledger, f.store, &failingLoader{err: errs.New("connection refused")}, f.notifier, logger, 3)

		_, _, err := cmds.ReloadCatalog(context.Background())
		assert.True(t, errs.Is(err, errs.ErrCatalogUnavailable))
		assert.Same(t, before, f.store.Current())
	})
}

type failingLoader struct{ err error }

func (l *failingLoader) Load(context.Context) ([]catalog.Product, []catalog.OfferRule, error) {
	return nil, nil, l.err
}
