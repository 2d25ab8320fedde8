package seeder

import (
	"fmt"
	"sort"

	"github.com/Rana718/winegen/internal/types"
)

// buildFunc generates one table. built holds every table the dataset
// depends on, keyed by name.
type buildFunc func(built map[string]*types.Table) (*types.Table, error)

type dataset struct {
	Name         string
	Dependencies []string
	build        buildFunc
}

type DependencyGraph struct {
	datasets map[string]*dataset
	order    []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		datasets: make(map[string]*dataset),
	}
}

func (g *DependencyGraph) Add(d *dataset) {
	g.datasets[d.Name] = d
}

// BuildOrder returns dataset names so that every dataset follows its
// dependencies. Names are visited in sorted order, so the result is stable.
func (g *DependencyGraph) BuildOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving dataset: %s", name)
		}
		if visited[name] {
			return nil
		}

		d, ok := g.datasets[name]
		if !ok {
			return fmt.Errorf("unknown dataset: %s", name)
		}

		temp[name] = true
		for _, dep := range d.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	names := make([]string, 0, len(g.datasets))
	for name := range g.datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

// Build generates every dataset in dependency order.
func (g *DependencyGraph) Build() ([]*types.Table, error) {
	order, err := g.BuildOrder()
	if err != nil {
		return nil, err
	}

	built := make(map[string]*types.Table, len(order))
	tables := make([]*types.Table, 0, len(order))
	for _, name := range order {
		d := g.datasets[name]
		deps := make(map[string]*types.Table, len(d.Dependencies))
		for _, dep := range d.Dependencies {
			deps[dep] = built[dep]
		}
		table, err := d.build(deps)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", name, err)
		}
		built[name] = table
		tables = append(tables, table)
	}
	return tables, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}
