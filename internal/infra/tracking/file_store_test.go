package tracking

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"sprout/config"
	"sprout/internal/domain/entity"
	"sprout/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (service.TrackingStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "post-purchase.json")
	store := NewFileStore(Params{
		Config: &config.Config{Tracking: &config.TrackingConfig{Path: path}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return store, path
}

func TestFileStore_PutThenTake(t *testing.T) {
	store, path := newTestStore(t)

	bundle := service.PurchaseBundle{
		Orders:     []entity.Order{{ID: "order-1"}},
		Summary:    entity.OrderSummary{Subtotal: 100, Total: 95},
		CouponCode: "WELCOME10",
	}
	require.NoError(t, store.Put(bundle))

	got, ok := store.Take()
	require.True(t, ok)
	assert.Equal(t, "order-1", got.Orders[0].ID)
	assert.Equal(t, "WELCOME10", got.CouponCode)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "the bundle is consumed on read")

	_, ok = store.Take()
	assert.False(t, ok)
}

func TestFileStore_TakeWithoutBundle(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := store.Take()
	assert.False(t, ok)
}

func TestFileStore_CorruptBundleDiscarded(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := store.Take()
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "a corrupt bundle can never replay")
}

func TestFileStore_PutOverwrites(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Put(service.PurchaseBundle{CouponCode: "FIRST"}))
	require.NoError(t, store.Put(service.PurchaseBundle{CouponCode: "SECOND"}))

	got, ok := store.Take()
	require.True(t, ok)
	assert.Equal(t, "SECOND", got.CouponCode)
}
