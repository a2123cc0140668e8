package seeder

import (
	"fmt"
	"sort"
)

// DependencyGraph orders tables so every table comes after the tables its
// routine reads ids from.
type DependencyGraph struct {
	deps  map[string][]string
	order []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		deps: make(map[string][]string),
	}
}

// NewRoutineGraph builds the graph from the registered routines.
func NewRoutineGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for table, r := range routines {
		g.AddTable(table, r.dependsOn...)
	}
	return g
}

func (g *DependencyGraph) AddTable(table string, dependsOn ...string) {
	g.deps[table] = append(g.deps[table], dependsOn...)
}

// BuildInsertionOrder returns a topological order. Ties are broken by name so
// the result is stable.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(table string) error {
		if temp[table] {
			return fmt.Errorf("circular dependency detected involving table: %s", table)
		}
		if visited[table] {
			return nil
		}

		temp[table] = true
		for _, dep := range sortedCopy(g.deps[table]) {
			if dep == table {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[table] = false
		visited[table] = true
		order = append(order, table)
		return nil
	}

	tables := make([]string, 0, len(g.deps))
	for table := range g.deps {
		tables = append(tables, table)
	}
	for _, table := range sortedCopy(tables) {
		if err := visit(table); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}

// SuggestOrder is a dependency-respecting fill order over every registered table.
func SuggestOrder() ([]string, error) {
	return NewRoutineGraph().BuildInsertionOrder()
}

// CheckOrder reports tables listed before, or without, the tables they read
// from. The order is never changed; the caller decides.
func CheckOrder(order []string) []string {
	position := make(map[string]int, len(order))
	for i, table := range order {
		if _, seen := position[table]; !seen {
			position[table] = i
		}
	}

	var warnings []string
	for i, table := range order {
		r, ok := routines[table]
		if !ok {
			continue
		}
		for _, dep := range r.dependsOn {
			if dep == table {
				continue
			}
			at, listed := position[dep]
			switch {
			case !listed:
				warnings = append(warnings, fmt.Sprintf("%s reads from %s, which is not in the fill order", table, dep))
			case at > i:
				warnings = append(warnings, fmt.Sprintf("%s is filled before %s, which it reads from", table, dep))
			}
		}
	}
	return warnings
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
