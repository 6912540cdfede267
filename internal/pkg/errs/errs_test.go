//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"chatcart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	t.Run("sees a mark on a marked error", func(t *testing.T) {
		err := errs.Mark(errs.Newf("reserve %q", "SKU-GHOST"), errs.ErrUnknownSKU)

		assert.True(t, errs.Is(err, errs.ErrUnknownSKU))
		assert.False(t, errs.Is(err, errs.ErrUnknownToken))
	})

	t.Run("sees a mark through further wrapping", func(t *testing.T) {
		err := errs.Mark(errs.New("row missing"), errs.ErrUnknownProduct)
		wrapped := errs.Wrap(err, "handle intent")

		assert.True(t, errs.Is(wrapped, errs.ErrUnknownProduct))
	})

	t.Run("matches bare sentinels like the standard library", func(t *testing.T) {
		assert.True(t, errs.Is(errs.ErrNonPositiveQty, errs.ErrNonPositiveQty))
		assert.True(t, errs.Is(errs.Wrap(errs.ErrTerminalOrder, "checkout"), errs.ErrTerminalOrder))
	})

	t.Run("mark on existing error keeps the original message", func(t *testing.T) {
		base := errors.New("loader exploded")
		err := errs.Mark(base, errs.ErrCatalogUnavailable)

		assert.True(t, errs.Is(err, errs.ErrCatalogUnavailable))
		assert.Contains(t, err.Error(), "loader exploded")
	})

	t.Run("nil error marks to the sentinel itself", func(t *testing.T) {
		err := errs.Mark(nil, errs.ErrUnknownSession)

		assert.True(t, errs.Is(err, errs.ErrUnknownSession))
	})
}
