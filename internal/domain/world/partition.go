package world

import (
	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

// partition is an insertion-ordered set of entities keyed by number
type partition[T any] struct {
	kind  string
	name  plant.Partition
	order []string
	items map[string]*T
}

func newPartition[T any](kind string, name plant.Partition) *partition[T] {
	return &partition[T]{
		kind:  kind,
		name:  name,
		items: make(map[string]*T),
	}
}

func (p *partition[T]) add(key string, item *T) {
	if _, exists := p.items[key]; !exists {
		p.order = append(p.order, key)
	}
	p.items[key] = item
}

func (p *partition[T]) get(key string) (*T, error) {
	item, ok := p.items[key]
	if !ok {
		return nil, plant.NewNotFoundError(p.kind, key, p.name)
	}
	return item, nil
}

func (p *partition[T]) take(key string) (*T, error) {
	item, err := p.get(key)
	if err != nil {
		return nil, err
	}
	delete(p.items, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return item, nil
}

func (p *partition[T]) len() int {
	return len(p.order)
}

// values copies every entity in insertion order
func (p *partition[T]) values() []T {
	out := make([]T, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, *p.items[key])
	}
	return out
}

func (p *partition[T]) each(fn func(*T)) {
	for _, key := range p.order {
		fn(p.items[key])
	}
}
