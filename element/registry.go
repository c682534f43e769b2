// registry.go lets hosts find elements by name instead of linking to them directly.

package element

import (
	"context"
	"sort"

	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/xsync"
)

// Rank orders elements offering the same functionality; hosts picking
// elements automatically prefer higher ranks.
type Rank int

const (
	RankNone      = Rank(0)
	RankMarginal  = Rank(64)
	RankSecondary = Rank(128)
	RankPrimary   = Rank(256)
)

type Factory func(ctx context.Context) Transform

type registration struct {
	Rank    Rank
	Factory Factory
}

type Registry struct {
	Locker   xsync.Mutex
	elements map[string]registration
}

// DefaultRegistry is the registry used by the command-line host.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		elements: map[string]registration{},
	}
}

func (r *Registry) Register(
	ctx context.Context,
	name string,
	rank Rank,
	factory Factory,
) error {
	return xsync.DoR1(ctx, &r.Locker, func() error {
		if _, ok := r.elements[name]; ok {
			return ErrAlreadyRegistered{Name: name}
		}
		r.elements[name] = registration{Rank: rank, Factory: factory}
		logger.Debugf(ctx, "registered element %q with rank %d", name, rank)
		return nil
	})
}

func (r *Registry) New(
	ctx context.Context,
	name string,
) (Transform, error) {
	reg, ok := xsync.DoA1R2(ctx, &r.Locker, r.lookupLocked, name)
	if !ok {
		return nil, ErrNotRegistered{Name: name}
	}
	return reg.Factory(ctx), nil
}

func (r *Registry) lookupLocked(name string) (registration, bool) {
	reg, ok := r.elements[name]
	return reg, ok
}

// Names returns registered element names ordered by rank (highest first) and then by name.
func (r *Registry) Names(ctx context.Context) []string {
	return xsync.DoR1(ctx, &r.Locker, func() []string {
		names := make([]string, 0, len(r.elements))
		for name := range r.elements {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			ri, rj := r.elements[names[i]].Rank, r.elements[names[j]].Rank
			if ri != rj {
				return ri > rj
			}
			return names[i] < names[j]
		})
		return names
	})
}
