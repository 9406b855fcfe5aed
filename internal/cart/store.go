package cart

import (
	"sync"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/logger"
)

// Listener is notified with the post-dispatch state.
type Listener func(state domain.CartState)

// Store owns one cart. Each Store is independent; there is no package-level
// cart, so tests and separate UI sessions never share state.
type Store struct {
	mu        sync.Mutex
	reducer   *Reducer
	state     domain.CartState
	listeners map[int]Listener
	nextSub   int
}

type Option func(*Store)

// WithIDFunc overrides the item id generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		s.reducer = NewReducer(fn)
	}
}

// WithInitialState seeds the store; totals are recomputed from the items.
func WithInitialState(state domain.CartState) Option {
	return func(s *Store) {
		s.state = Recompute(state)
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		reducer:   NewReducer(nil),
		state:     domain.EmptyCart(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies the action and returns the resulting state.
func (s *Store) Dispatch(action Action) domain.CartState {
	s.mu.Lock()
	s.state = s.reducer.Reduce(s.state, action)
	snapshot := s.state.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	logger.Debug().
		Str("action", ActionName(action)).
		Int("total_items", snapshot.TotalItems).
		Str("total_price", snapshot.TotalPrice.StringFixed(2)).
		Msg("Cart dispatch")

	// Listeners run outside the lock so they may call State or Dispatch.
	for _, l := range listeners {
		l(snapshot.Clone())
	}
	return snapshot
}

// State returns a copy of the current cart.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers a listener and returns its unsubscribe func.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Convenience wrappers mirroring the four actions.

func (s *Store) AddItem(p domain.Product, quantity int) domain.CartState {
	return s.Dispatch(AddItem{Product: p, Quantity: quantity})
}

func (s *Store) UpdateItemQuantity(id string, quantity int) domain.CartState {
	return s.Dispatch(UpdateItemQuantity{ID: id, Quantity: quantity})
}

func (s *Store) RemoveItem(id string) domain.CartState {
	return s.Dispatch(RemoveItem{ID: id})
}

func (s *Store) Clear() domain.CartState {
	return s.Dispatch(ClearCart{})
}
