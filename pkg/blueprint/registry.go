package blueprint

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds every legal resolved blueprint, keyed by
// "trope|tension|ending|modifier". It is populated once by an explicit
// Build call and is read-only afterward; lookups never fall back or infer.
type Registry struct {
	trope string

	mu    sync.Mutex
	built bool
	byKey map[string]*Blueprint
}

// NewRegistry creates an empty registry for a trope. Call Build before
// any lookups.
func NewRegistry(trope string) *Registry {
	return &Registry{
		trope: trope,
		byKey: make(map[string]*Blueprint),
	}
}

// legalCombinations enumerates exactly the legal combination space:
// 12 for safety (3 endings x 2 secret x 2 triangle) and 2 for identity
// (HEA only, triangle forced false, 2 secret values) — 14 total.
func legalCombinations() []struct {
	Tension  Tension
	Ending   Ending
	Secret   bool
	Triangle bool
} {
	var combos []struct {
		Tension  Tension
		Ending   Ending
		Secret   bool
		Triangle bool
	}
	bools := []bool{false, true}
	for _, ending := range []Ending{EndingHEA, EndingBittersweet, EndingTragic} {
		for _, secret := range bools {
			for _, triangle := range bools {
				combos = append(combos, struct {
					Tension  Tension
					Ending   Ending
					Secret   bool
					Triangle bool
				}{TensionSafety, ending, secret, triangle})
			}
		}
	}
	for _, secret := range bools {
		combos = append(combos, struct {
			Tension  Tension
			Ending   Ending
			Secret   bool
			Triangle bool
		}{TensionIdentity, EndingHEA, secret, false})
	}
	return combos
}

// Build resolves every legal combination and stores the results. It is
// idempotent: subsequent calls are no-ops.
func (r *Registry) Build() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built {
		return nil
	}

	for _, c := range legalCombinations() {
		bp, err := Resolve(c.Tension, c.Ending, c.Secret, c.Triangle)
		if err != nil {
			return fmt.Errorf("registry build: %w", err)
		}
		r.byKey[bp.ID] = bp
	}

	r.built = true
	return nil
}

// Get returns the blueprint for the combination, or nil when no such
// blueprint is registered.
func (r *Registry) Get(trope string, tension Tension, ending Ending, modifier Modifier) *Blueprint {
	if trope != r.trope {
		return nil
	}
	return r.byKey[Key(trope, tension, ending, modifier)]
}

// Has reports whether the combination has a registered blueprint.
func (r *Registry) Has(trope string, tension Tension, ending Ending, modifier Modifier) bool {
	return r.Get(trope, tension, ending, modifier) != nil
}

// Keys returns every registered key in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every registered blueprint in key order.
func (r *Registry) All() []*Blueprint {
	keys := r.Keys()
	out := make([]*Blueprint, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.byKey[k])
	}
	return out
}
