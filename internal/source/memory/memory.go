// Package memory holds a fixed donation set in memory, for tests and demos.
package memory

import (
	"context"
	"sync"

	"donare/internal/core"
)

type Store struct {
	mu        sync.Mutex
	donations []core.Donation
}

func New(donations []core.Donation) *Store {
	return &Store{donations: append([]core.Donation(nil), donations...)}
}

// NewSample builds a store with a small demonstration history spanning
// several years, schedules, and sectors.
func NewSample() *Store {
	rows := []core.Donation{
		{PayeeID: "53-0196605", Organization: "American Red Cross", Sector: "Human Services", Amount: core.Money{Cents: 100000}, Date: core.NewDate(2021, 3, 15), Schedule: "annually through indefinitely"},
		{PayeeID: "53-0196605", Organization: "American Red Cross", Sector: "Human Services", Amount: core.Money{Cents: 100000}, Date: core.NewDate(2022, 3, 14), Schedule: "annually through indefinitely"},
		{PayeeID: "53-0196605", Organization: "American Red Cross", Sector: "Human Services", Amount: core.Money{Cents: 120000}, Date: core.NewDate(2023, 3, 20), Schedule: "annually through indefinitely"},
		{PayeeID: "53-0196605", Organization: "American Red Cross", Sector: "Human Services", Amount: core.Money{Cents: 120000}, Date: core.NewDate(2024, 3, 18), Schedule: "annually through indefinitely"},
		{PayeeID: "53-0242652", Organization: "The Nature Conservancy", Sector: "Environment", Amount: core.Money{Cents: 50000}, Date: core.NewDate(2023, 6, 1)},
		{PayeeID: "53-0242652", Organization: "The Nature Conservancy", Sector: "Environment", Amount: core.Money{Cents: 75000}, Date: core.NewDate(2024, 6, 2)},
		{PayeeID: "13-6161001", Organization: "The Salvation Army", Sector: "Human Services", Amount: core.Money{Cents: 25000}, Date: core.NewDate(2022, 12, 24)},
	}
	return New(rows)
}

func (s *Store) Read(_ context.Context) ([]core.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Donation(nil), s.donations...), nil
}
