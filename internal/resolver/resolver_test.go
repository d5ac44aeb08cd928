package resolver

import (
	"errors"
	"testing"
)

func TestSimpleChain(t *testing.T) {
	r := NewResolver([]RuleInfo{
		{ID: "enable-cache"},
		{ID: "drop-celery-trace", After: []string{"enable-cache"}},
	})

	res, err := r.Resolve([]string{"drop-celery-trace"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if len(res.Order) != 2 {
		t.Fatalf("Order len = %d, want 2", len(res.Order))
	}
	if res.Order[0] != "enable-cache" {
		t.Errorf("Order = %v, enable-cache should run first", res.Order)
	}
	if !res.Requested["drop-celery-trace"] {
		t.Error("drop-celery-trace should be requested")
	}
	if res.Requested["enable-cache"] {
		t.Error("enable-cache should not be requested")
	}
	if res.RequiredBy["enable-cache"] != "drop-celery-trace" {
		t.Errorf("enable-cache required_by = %q, want %q", res.RequiredBy["enable-cache"], "drop-celery-trace")
	}
}

func TestMultiLevel(t *testing.T) {
	r := NewResolver([]RuleInfo{
		{ID: "a"},
		{ID: "b", After: []string{"a"}},
		{ID: "c", After: []string{"b"}},
	})

	res, err := r.Resolve([]string{"c"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(res.Order) != len(want) {
		t.Fatalf("Order = %v, want %v", res.Order, want)
	}
	for i := range want {
		if res.Order[i] != want[i] {
			t.Errorf("Order[%d] = %q, want %q", i, res.Order[i], want[i])
		}
	}
}

func TestAllIsDeterministic(t *testing.T) {
	rules := []RuleInfo{
		{ID: "zeta"},
		{ID: "alpha"},
		{ID: "mid", After: []string{"zeta"}},
	}

	first, err := NewResolver(rules).All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := NewResolver(rules).All()
		if err != nil {
			t.Fatalf("All() error: %v", err)
		}
		for j := range first.Order {
			if first.Order[j] != again.Order[j] {
				t.Fatalf("order changed between runs: %v vs %v", first.Order, again.Order)
			}
		}
	}
	if first.Order[0] != "alpha" {
		t.Errorf("Order = %v, want alpha first", first.Order)
	}
}

func TestCircularDependency(t *testing.T) {
	r := NewResolver([]RuleInfo{
		{ID: "a", After: []string{"b"}},
		{ID: "b", After: []string{"a"}},
	})

	_, err := r.All()
	var cycleErr *CircularDependencyError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CircularDependencyError, got %v", err)
	}
	if len(cycleErr.Cycle) < 3 {
		t.Errorf("cycle = %v, want closed path", cycleErr.Cycle)
	}
}

func TestMissingRule(t *testing.T) {
	r := NewResolver([]RuleInfo{{ID: "a"}})

	_, err := r.Resolve([]string{"nope"})
	var missing *MissingRuleError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRuleError, got %v", err)
	}
	if missing.Rule != "nope" {
		t.Errorf("Rule = %q, want %q", missing.Rule, "nope")
	}
}

func TestMissingDependency(t *testing.T) {
	r := NewResolver([]RuleInfo{{ID: "a", After: []string{"ghost"}}})

	_, err := r.Resolve([]string{"a"})
	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDependencyError, got %v", err)
	}
	if missing.Dependency != "ghost" {
		t.Errorf("Dependency = %q, want %q", missing.Dependency, "ghost")
	}
}
