package catalog

import (
	"context"
	"sort"
	"sync/atomic"
)

// Snapshot is a read-only view of the loaded catalog. The engine never
// mutates a snapshot; reloads build a fresh one and swap it in wholesale.
type Snapshot struct {
	products map[string]Product
	rules    []OfferRule
}

func NewSnapshot(products []Product, rules []OfferRule) *Snapshot {
	bySKU := make(map[string]Product, len(products))
	for _, p := range products {
		bySKU[p.SKU()] = p
	}
	sorted := make([]OfferRule, len(rules))
	copy(sorted, rules)
	// Deterministic rule order: priority rank first, then rule ID.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority() != sorted[j].Priority() {
			return sorted[i].Priority() < sorted[j].Priority()
		}
		return sorted[i].ID() < sorted[j].ID()
	})
	return &Snapshot{products: bySKU, rules: sorted}
}

func (s *Snapshot) Product(sku string) (Product, bool) {
	p, ok := s.products[sku]
	return p, ok
}

func (s *Snapshot) Products() []Product {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU() < out[j].SKU() })
	return out
}

func (s *Snapshot) Rules() []OfferRule {
	out := make([]OfferRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Loader supplies catalog contents from whatever backs them (Postgres in
// production, a static set in tests). File formats are the loader's problem,
// never the engine's.
type Loader interface {
	Load(ctx context.Context) ([]Product, []OfferRule, error)
}

// Store holds the current snapshot behind an atomic pointer so reads never
// block a concurrent reload.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	if initial == nil {
		initial = NewSnapshot(nil, nil)
	}
	s.current.Store(initial)
	return s
}

func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

func (s *Store) Replace(snap *Snapshot) {
	if snap == nil {
		snap = NewSnapshot(nil, nil)
	}
	s.current.Store(snap)
}

// StaticLoader serves a fixed product/rule set. Used in tests and as a seed
// source when no database is configured.
type StaticLoader struct {
	products []Product
	rules    []OfferRule
}

func NewStaticLoader(products []Product, rules []OfferRule) *StaticLoader {
	return &StaticLoader{products: products, rules: rules}
}

func (l *StaticLoader) Load(_ context.Context) ([]Product, []OfferRule, error) {
	return l.products, l.rules, nil
}
