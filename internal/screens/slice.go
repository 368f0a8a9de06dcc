package screens

import (
	"sync"

	"fitplanner/internal/models"
)

// Slice holds one screen's list. Apply replaces it wholesale with a copy.
type Slice[T any] struct {
	mu    sync.RWMutex
	items []T
}

func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

func (s *Slice[T]) Apply(items []T) {
	cp := append(make([]T, 0, len(items)), items...)
	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()
}

// Items returns a copy that is never nil.
func (s *Slice[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]T, 0, len(s.items)), s.items...)
}

func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

type (
	MealPlan         = Slice[models.DayMealPlan]
	Grocery          = Slice[models.GroceryItem]
	BrandSuggestions = Slice[models.BrandSuggestion]
)
