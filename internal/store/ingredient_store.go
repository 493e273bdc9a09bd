package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"

	"go.uber.org/fx"
)

const errSearchIngredients = "Error getting recipe information"

const opSearchIngredients = "searchIngredients"

// IngredientState is the allergy-vocabulary autocomplete cache: a sorted,
// de-duplicated name list plus a name-keyed index. Searches only ever add to
// the cache, they never shrink it.
type IngredientState struct {
	Init   bool
	Status Status
	Err    string
	Names  []string
	ByName map[string]entity.Ingredient
}

func initialIngredientState() IngredientState {
	return IngredientState{
		Status: StatusIdle,
		ByName: map[string]entity.Ingredient{},
	}
}

func (st IngredientState) clone() IngredientState {
	clone := st
	clone.Names = append([]string(nil), st.Names...)
	clone.ByName = make(map[string]entity.Ingredient, len(st.ByName))
	for name, ingredient := range st.ByName {
		clone.ByName[name] = ingredient
	}

	return clone
}

// IngredientStore owns the ingredient autocomplete cache.
type IngredientStore struct {
	mu    sync.Mutex
	state IngredientState
	seq   map[string]uint64

	ingredients repository.IngredientRepository
	logger      *slog.Logger
}

// IngredientStoreParams holds dependencies for the ingredient store,
// injected by Fx.
type IngredientStoreParams struct {
	fx.In

	Ingredients repository.IngredientRepository
	Logger      *slog.Logger
}

// NewIngredientStore creates the ingredient store.
func NewIngredientStore(params IngredientStoreParams) *IngredientStore {
	return &IngredientStore{
		state:       initialIngredientState(),
		seq:         map[string]uint64{},
		ingredients: params.Ingredients,
		logger:      params.Logger,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *IngredientStore) Snapshot() IngredientState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

// Search fetches ingredients matching the name prefix and merges them into
// the cache.
func (s *IngredientStore) Search(ctx context.Context, name string) error {
	token := s.begin(opSearchIngredients)

	ingredients, err := s.ingredients.Search(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opSearchIngredients, token) {
		return err
	}
	if err != nil {
		s.state.Status = StatusError
		s.state.Err = errSearchIngredients

		return err
	}
	s.state.Init = true
	s.state.Status = StatusSuccess
	s.merge(ingredients)

	return nil
}

func (s *IngredientStore) begin(op string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[op]++
	s.state.Status = StatusLoading

	return s.seq[op]
}

func (s *IngredientStore) stale(op string, token uint64) bool {
	if s.seq[op] != token {
		s.logger.Debug("dropped stale response", slog.String("operation", op))

		return true
	}

	return false
}

// merge adds fetched ingredients to the cache and re-sorts the name list.
// Callers must hold the lock.
func (s *IngredientStore) merge(ingredients []entity.Ingredient) {
	for _, ingredient := range ingredients {
		if _, ok := s.state.ByName[ingredient.Name]; !ok {
			s.state.Names = append(s.state.Names, ingredient.Name)
		}
		s.state.ByName[ingredient.Name] = ingredient
	}
	sort.Strings(s.state.Names)
}
