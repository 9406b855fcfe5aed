package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic-client/internal/cart"
	"petclinic-client/internal/domain"
	"petclinic-client/internal/infrastructure/cache"
)

func newCart(t *testing.T) (*CartUsecase, *fakeDirectory) {
	t.Helper()
	dir := newFakeDirectory()
	dir.products["collar"] = domain.Product{ID: "collar", Name: "Collar", Price: decimal.RequireFromString("12.50"), Color: "red"}
	catalog := NewCatalogUsecase(dir, doctorRepo{dir}, productRepo{dir}, cache.NewMemoryCache(time.Minute, time.Minute), testConfig())

	n := 0
	store := cart.NewStore(cart.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}))
	return NewCartUsecase(store, catalog), dir
}

func TestCartUsecase_AddProductSnapshotsVariant(t *testing.T) {
	uc, _ := newCart(t)
	ctx := context.Background()

	st, err := uc.AddProduct(ctx, "collar", "", "M", 2)
	require.NoError(t, err)
	st, err = uc.AddProduct(ctx, "collar", "red", "M", 1)
	require.NoError(t, err)
	require.Len(t, st.Items, 1)
	assert.Equal(t, 3, st.Items[0].Quantity)

	st, err = uc.AddProduct(ctx, "collar", "blue", "M", 1)
	require.NoError(t, err)
	assert.Len(t, st.Items, 2)
	assert.Equal(t, "50.00", st.TotalPrice.StringFixed(2))
}

func TestCartUsecase_LookupFailureLeavesCartAlone(t *testing.T) {
	uc, _ := newCart(t)
	_, err := uc.AddProduct(context.Background(), "collar", "", "", 1)
	require.NoError(t, err)

	st, err := uc.AddProduct(context.Background(), "ghost", "", "", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, st.TotalItems)
	assert.Equal(t, 1, uc.State().TotalItems)
}

func TestCartUsecase_RejectsNonPositiveQuantity(t *testing.T) {
	uc, dir := newCart(t)
	ctx := context.Background()
	_, err := uc.AddProduct(ctx, "collar", "", "", 2)
	require.NoError(t, err)
	hits := dir.productHits

	for _, q := range []int{0, -1, -40} {
		st, err := uc.AddProduct(ctx, "collar", "", "", q)
		assert.ErrorIs(t, err, domain.ErrValidation, "q=%d", q)
		assert.Equal(t, 2, st.TotalItems)
	}
	assert.Equal(t, 2, uc.State().Items[0].Quantity)
	assert.Equal(t, hits, dir.productHits, "no lookup for a rejected quantity")
}

func TestCartUsecase_UpdateRemoveClear(t *testing.T) {
	uc, _ := newCart(t)
	var notified int
	unsubscribe := uc.Subscribe(func(domain.CartState) { notified++ })
	defer unsubscribe()

	st, err := uc.AddProduct(context.Background(), "collar", "", "", 1)
	require.NoError(t, err)
	id := st.Items[0].ID

	st = uc.UpdateQuantity(id, -3)
	assert.Equal(t, cart.MinQuantity, st.Items[0].Quantity)

	st = uc.Remove("nope")
	assert.Len(t, st.Items, 1)

	st = uc.Remove(id)
	assert.Empty(t, st.Items)

	st = uc.Clear()
	assert.Equal(t, domain.EmptyCart(), st)
	assert.Equal(t, 5, notified)
}
