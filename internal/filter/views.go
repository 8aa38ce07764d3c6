package filter

import (
	"fmt"
	"sync"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// ViewName identifies one of the independently-filtered views.
type ViewName string

const (
	ViewChart        ViewName = "chart"
	ViewList         ViewName = "list"
	ViewCrossCompany ViewName = "cross-company"
)

var viewNames = []ViewName{ViewChart, ViewList, ViewCrossCompany}

// ParseViewName converts a raw string to a ViewName, returning an error
// for unknown values.
func ParseViewName(s string) (ViewName, error) {
	v := ViewName(s)
	for _, known := range viewNames {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Views holds one spec per view. Each view's spec is an independent
// copy; edits to one never affect another until an explicit Sync, which
// is a plain value overwrite, not a merge. Safe for concurrent use.
type Views struct {
	mu    sync.Mutex
	specs map[ViewName]Spec
}

// NewViews creates the view set with every view starting from the same
// default spec (copied, not shared).
func NewViews(defaults Spec) *Views {
	specs := make(map[ViewName]Spec, len(viewNames))
	for _, name := range viewNames {
		specs[name] = defaults.Clone()
	}
	return &Views{specs: specs}
}

// DefaultSpec is the starting filter state for every view.
func DefaultSpec() Spec {
	return Spec{TimeWindow: domain.Window30d}
}

// Get returns a copy of the named view's spec.
func (v *Views) Get(name ViewName) (Spec, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	spec, ok := v.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("unknown view %q", name)
	}
	return spec.Clone(), nil
}

// Set overwrites the named view's spec with a copy of the given value.
func (v *Views) Set(name ViewName, spec Spec) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.specs[name]; !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	v.specs[name] = spec.Clone()
	return nil
}

// Update applies fn to a copy of the named view's spec and stores the
// result atomically.
func (v *Views) Update(name ViewName, fn func(Spec) Spec) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	spec, ok := v.specs[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	v.specs[name] = fn(spec.Clone()).Clone()
	return nil
}

// Sync copies the source view's spec into the destination view. One-shot:
// later edits to either view do not propagate.
func (v *Views) Sync(dst, src ViewName) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	from, ok := v.specs[src]
	if !ok {
		return fmt.Errorf("unknown view %q", src)
	}
	if _, ok := v.specs[dst]; !ok {
		return fmt.Errorf("unknown view %q", dst)
	}
	v.specs[dst] = from.Clone()
	return nil
}
