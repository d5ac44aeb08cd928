// Package resolver orders configuration fixup rules so that every rule runs
// after the rules it depends on.
package resolver

import (
	"fmt"
	"sort"
	"strings"
)

// RuleInfo is a rule's position in the dependency graph.
type RuleInfo struct {
	ID string
	// After lists rules whose effects this rule must observe.
	After []string
}

// Resolution is the result of ordering a set of rules.
type Resolution struct {
	// Order is the topologically sorted list of all rule IDs.
	Order []string
	// Requested are the rules asked for directly.
	Requested map[string]bool
	// RequiredBy maps pulled-in rules to the rule that needed them.
	RequiredBy map[string]string
}

// CircularDependencyError indicates a cycle in the rule graph.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Cycle, " → "))
}

// MissingRuleError indicates a requested rule doesn't exist.
type MissingRuleError struct {
	Rule string
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("rule not found: %s", e.Rule)
}

// MissingDependencyError indicates a rule refers to an unknown rule.
type MissingDependencyError struct {
	Rule       string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("rule %q runs after %q, which does not exist", e.Rule, e.Dependency)
}

// Resolver orders rules.
type Resolver struct {
	rules map[string]RuleInfo
}

// NewResolver creates a resolver over the given rules.
func NewResolver(rules []RuleInfo) *Resolver {
	m := make(map[string]RuleInfo, len(rules))
	for _, r := range rules {
		m[r.ID] = r
	}
	return &Resolver{rules: m}
}

// All orders every known rule.
func (r *Resolver) All() (*Resolution, error) {
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return r.Resolve(ids)
}

// Resolve orders the requested rules plus everything they run after, using
// Kahn's algorithm. Ties are broken alphabetically so the order is stable.
func (r *Resolver) Resolve(requested []string) (*Resolution, error) {
	for _, id := range requested {
		if _, ok := r.rules[id]; !ok {
			return nil, &MissingRuleError{Rule: id}
		}
	}

	needed := make(map[string]bool)
	requestedSet := make(map[string]bool)
	requiredBy := make(map[string]string)

	for _, id := range requested {
		requestedSet[id] = true
	}

	queue := make([]string, len(requested))
	copy(queue, requested)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if needed[current] {
			continue
		}
		needed[current] = true

		for _, dep := range r.rules[current].After {
			if _, ok := r.rules[dep]; !ok {
				return nil, &MissingDependencyError{Rule: current, Dependency: dep}
			}
			if !requestedSet[dep] && requiredBy[dep] == "" {
				requiredBy[dep] = current
			}
			queue = append(queue, dep)
		}
	}

	inDegree := make(map[string]int)
	adj := make(map[string][]string) // dep -> dependents

	for id := range needed {
		if _, ok := inDegree[id]; !ok {
			inDegree[id] = 0
		}
		for _, dep := range r.rules[id].After {
			if needed[dep] {
				adj[dep] = append(adj[dep], id)
				inDegree[id]++
			}
		}
	}

	var ready []string
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}

	var order []string
	for len(ready) > 0 {
		sort.Strings(ready)
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		for _, dependent := range adj[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(needed) {
		return nil, &CircularDependencyError{Cycle: r.findCycle(needed)}
	}

	return &Resolution{
		Order:      order,
		Requested:  requestedSet,
		RequiredBy: requiredBy,
	}, nil
}

// findCycle finds a cycle among the needed rules.
func (r *Resolver) findCycle(needed map[string]bool) []string {
	visited := make(map[string]int) // 0=unvisited, 1=in-progress, 2=done
	var path []string

	var dfs func(node string) []string
	dfs = func(node string) []string {
		visited[node] = 1
		path = append(path, node)

		for _, dep := range r.rules[node].After {
			if !needed[dep] {
				continue
			}
			if visited[dep] == 1 {
				for i, n := range path {
					if n == dep {
						cycle := make([]string, len(path[i:])+1)
						copy(cycle, path[i:])
						cycle[len(cycle)-1] = dep
						return cycle
					}
				}
			}
			if visited[dep] == 0 {
				if cycle := dfs(dep); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		visited[node] = 2
		return nil
	}

	ids := make([]string, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if visited[id] == 0 {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
