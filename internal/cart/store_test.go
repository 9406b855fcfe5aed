package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic-client/internal/domain"
)

func TestStore_StartsEmpty(t *testing.T) {
	s := NewStore()
	assert.Equal(t, domain.EmptyCart(), s.State())
}

func TestStore_IsolatedInstances(t *testing.T) {
	a := NewStore(WithIDFunc(sequentialIDs()))
	b := NewStore(WithIDFunc(sequentialIDs()))

	a.AddItem(product("1", 10), 2)

	assert.Len(t, a.State().Items, 1)
	assert.Empty(t, b.State().Items)
}

func TestStore_StateIsACopy(t *testing.T) {
	s := NewStore(WithIDFunc(sequentialIDs()))
	s.AddItem(product("1", 10), 1)

	snap := s.State()
	snap.Items[0].Quantity = 99

	assert.Equal(t, 1, s.State().Items[0].Quantity)
}

func TestStore_Wrappers(t *testing.T) {
	s := NewStore(WithIDFunc(sequentialIDs()))

	st := s.AddItem(product("1", 10), 2)
	require.Len(t, st.Items, 1)
	id := st.Items[0].ID
	assert.Equal(t, "item-1", id)

	st = s.UpdateItemQuantity(id, 5)
	assert.Equal(t, 5, st.TotalItems)

	st = s.RemoveItem(id)
	assert.Empty(t, st.Items)

	s.AddItem(product("2", 3), 1)
	st = s.Clear()
	assert.Equal(t, domain.EmptyCart(), st)
}

func TestStore_WithInitialStateRecomputesTotals(t *testing.T) {
	seed := domain.CartState{
		Items: []domain.CartItem{
			{ID: "a", Product: product("1", 10), Quantity: 2},
			{ID: "b", Product: product("2", 5), Quantity: 1},
		},
		TotalItems: 999,
		TotalPrice: decimal.NewFromInt(-1),
	}
	s := NewStore(WithInitialState(seed))

	st := s.State()
	assert.Equal(t, 3, st.TotalItems)
	assert.True(t, decimal.NewFromInt(25).Equal(st.TotalPrice))
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	s := NewStore(WithIDFunc(sequentialIDs()))

	var got []int
	unsubscribe := s.Subscribe(func(st domain.CartState) {
		got = append(got, st.TotalItems)
	})

	s.AddItem(product("1", 10), 2)
	s.AddItem(product("1", 10), 1)
	unsubscribe()
	s.Clear()

	assert.Equal(t, []int{2, 3}, got)
}

func TestStore_ListenerMayReadState(t *testing.T) {
	s := NewStore(WithIDFunc(sequentialIDs()))
	var seen int
	s.Subscribe(func(domain.CartState) {
		seen = s.State().TotalItems
	})
	s.AddItem(product("1", 1), 4)
	assert.Equal(t, 4, seen)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := NewStore()
	p := product("1", 2)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(p, 1)
		}()
	}
	wg.Wait()

	st := s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 50, st.TotalItems)
	assert.True(t, decimal.NewFromInt(100).Equal(st.TotalPrice))
}
