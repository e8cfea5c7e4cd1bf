package providers

import (
	"context"
	"sort"
	"sync"
)

// Platform is the positioning service the selector queries.
type Platform interface {
	// BestProvider returns the name of the best provider satisfying profile.
	// The boolean is false when no provider qualifies.
	BestProvider(ctx context.Context, profile Profile, enabledOnly bool) (string, bool, error)
}

// Lister enumerates the providers registered on a positioning service.
type Lister interface {
	ListProviders(ctx context.Context) ([]Descriptor, error)
}

// Best picks the best descriptor for profile: finest accuracy first, then
// lowest power, then name. When no provider fits the power budget the budget
// is dropped and the search is repeated at the requested accuracy.
func Best(descriptors []Descriptor, profile Profile, enabledOnly bool) (string, bool) {
	if name, ok := best(descriptors, enabledOnly, func(d Descriptor) bool { return d.Satisfies(profile) }); ok {
		return name, true
	}
	return best(descriptors, enabledOnly, func(d Descriptor) bool {
		return d.Accuracy <= profile.Accuracy
	})
}

func best(descriptors []Descriptor, enabledOnly bool, match func(Descriptor) bool) (string, bool) {
	var candidates []Descriptor
	for _, d := range descriptors {
		if enabledOnly && !d.Enabled {
			continue
		}
		if match(d) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Accuracy != b.Accuracy {
			return a.Accuracy < b.Accuracy
		}
		if a.Power != b.Power {
			return a.Power < b.Power
		}
		return a.Name < b.Name
	})
	return candidates[0].Name, true
}

// DescriptorPlatform adapts a Lister into a Platform.
type DescriptorPlatform struct {
	lister Lister
}

func NewDescriptorPlatform(lister Lister) *DescriptorPlatform {
	return &DescriptorPlatform{lister: lister}
}

// BestProvider lists the providers and applies Best.
func (p *DescriptorPlatform) BestProvider(ctx context.Context, profile Profile, enabledOnly bool) (string, bool, error) {
	descriptors, err := p.lister.ListProviders(ctx)
	if err != nil {
		return "", false, err
	}
	name, ok := Best(descriptors, profile, enabledOnly)
	return name, ok, nil
}

// StaticPlatform is an in-process set of providers whose enabled flags can be toggled.
type StaticPlatform struct {
	sync.RWMutex
	descriptors []Descriptor
}

// NewStaticPlatform creates a platform holding copies of the given descriptors.
func NewStaticPlatform(descriptors ...Descriptor) *StaticPlatform {
	return &StaticPlatform{descriptors: append([]Descriptor(nil), descriptors...)}
}

// ListProviders returns a snapshot of the registered providers.
func (p *StaticPlatform) ListProviders(ctx context.Context) ([]Descriptor, error) {
	p.RLock()
	defer p.RUnlock()
	return append([]Descriptor(nil), p.descriptors...), nil
}

// BestProvider applies Best to the registered providers.
func (p *StaticPlatform) BestProvider(ctx context.Context, profile Profile, enabledOnly bool) (string, bool, error) {
	p.RLock()
	defer p.RUnlock()
	name, ok := Best(p.descriptors, profile, enabledOnly)
	return name, ok, nil
}

// SetEnabled toggles a provider and reports whether it is registered.
func (p *StaticPlatform) SetEnabled(name string, enabled bool) bool {
	p.Lock()
	defer p.Unlock()
	for i := range p.descriptors {
		if p.descriptors[i].Name == name {
			p.descriptors[i].Enabled = enabled
			return true
		}
	}
	return false
}
