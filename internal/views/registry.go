package views

import (
	"fmt"
)

// Registry maps view names to their gates in registration order.
type Registry struct {
	gates map[View]Gate
	order []View
}

func NewRegistry(gates ...Gate) (*Registry, error) {
	r := &Registry{gates: make(map[View]Gate, len(gates))}
	for _, g := range gates {
		if err := r.Register(g); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds g under g.View(). Registering a view twice is an error.
func (r *Registry) Register(g Gate) error {
	if g == nil {
		return fmt.Errorf("views: nil gate")
	}
	v := g.View()
	if _, dup := r.gates[v]; dup {
		return fmt.Errorf("views: %s already registered", v)
	}
	r.gates[v] = g
	r.order = append(r.order, v)
	return nil
}

func (r *Registry) Lookup(v View) (Gate, bool) {
	g, ok := r.gates[v]
	return g, ok
}

// Views lists registered views in registration order.
func (r *Registry) Views() []View {
	return append([]View(nil), r.order...)
}
