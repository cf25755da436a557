package cpsat

import (
	"testing"
	"time"
)

const testLimit = 10 * time.Second

func ones(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func TestSolveAtLeast(t *testing.T) {
	m := NewBuilder()
	vars := []Var{m.NewBoolVar("a"), m.NewBoolVar("b"), m.NewBoolVar("c")}
	m.AddAtLeast(vars, ones(3), 2)

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	trueCount := 0
	for _, v := range vars {
		if resp.BoolValue(v) {
			trueCount++
		}
	}
	if trueCount < 2 {
		t.Errorf("Expected at least 2 true variables, got %d", trueCount)
	}
}

func TestSolveInfeasible(t *testing.T) {
	m := NewBuilder()
	v := m.NewBoolVar("x")
	m.AddAtLeast([]Var{v}, ones(1), 1)
	m.AddEquality([]Var{v}, ones(1), 0)

	resp := m.Solve(testLimit)
	if resp.Status != Infeasible {
		t.Errorf("Expected INFEASIBLE, got %s", resp.Status)
	}
}

func TestSolveAtMostOne(t *testing.T) {
	m := NewBuilder()
	vars := []Var{m.NewBoolVar("a"), m.NewBoolVar("b"), m.NewBoolVar("c")}
	m.AddAtLeast(vars, ones(3), 1)
	m.AddAtMost(vars, ones(3), 1)

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	trueCount := 0
	for _, v := range vars {
		if resp.BoolValue(v) {
			trueCount++
		}
	}
	if trueCount != 1 {
		t.Errorf("Expected exactly 1 true variable, got %d", trueCount)
	}
}

func TestSolveValueIndexing(t *testing.T) {
	m := NewBuilder()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddEquality([]Var{a}, ones(1), 0)
	m.AddAtLeast([]Var{b}, ones(1), 1)
	m.AddEquality([]Var{c}, ones(1), 0)

	// Every variable is forced, so the solved values pin down the
	// model-to-variable mapping.
	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	if resp.BoolValue(a) || !resp.BoolValue(b) || resp.BoolValue(c) {
		t.Errorf("Expected a=false b=true c=false, got a=%v b=%v c=%v",
			resp.BoolValue(a), resp.BoolValue(b), resp.BoolValue(c))
	}
}

func TestMaximize(t *testing.T) {
	m := NewBuilder()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddAtMost([]Var{a, b}, ones(2), 1)
	m.Maximize([]Var{a, b}, []int{5, 3})

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	if resp.ObjectiveValue != 5 {
		t.Errorf("Expected objective 5, got %d", resp.ObjectiveValue)
	}
	if !resp.BoolValue(a) || resp.BoolValue(b) {
		t.Errorf("Expected a=true b=false, got a=%v b=%v", resp.BoolValue(a), resp.BoolValue(b))
	}
}

func TestMaximizeWithNegativeCoefficient(t *testing.T) {
	m := NewBuilder()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddAtLeast([]Var{a}, ones(1), 1)
	m.Maximize([]Var{a, b}, []int{4, -3})

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	if resp.ObjectiveValue != 4 {
		t.Errorf("Expected objective 4, got %d", resp.ObjectiveValue)
	}
	if resp.BoolValue(b) {
		t.Errorf("Expected penalized variable to stay false")
	}
}

func TestMaxEquality(t *testing.T) {
	m := NewBuilder()
	target := m.NewBoolVar("t")
	s1 := m.NewBoolVar("s1")
	s2 := m.NewBoolVar("s2")
	m.AddMaxEquality(target, []Var{s1, s2})
	m.AddAtLeast([]Var{s1}, ones(1), 1)
	m.AddEquality([]Var{s2}, ones(1), 0)

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	if !resp.BoolValue(target) {
		t.Errorf("Expected target true when a source is true")
	}
}

func TestMaxEqualityAllFalse(t *testing.T) {
	m := NewBuilder()
	target := m.NewBoolVar("t")
	s1 := m.NewBoolVar("s1")
	s2 := m.NewBoolVar("s2")
	m.AddMaxEquality(target, []Var{s1, s2})
	m.AddEquality([]Var{s1}, ones(1), 0)
	m.AddEquality([]Var{s2}, ones(1), 0)

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	if resp.BoolValue(target) {
		t.Errorf("Expected target false when every source is false")
	}
}

func TestReifiedConjunction(t *testing.T) {
	m := NewBuilder()
	d1 := m.NewBoolVar("d1")
	d2 := m.NewBoolVar("d2")
	ind := m.NewBoolVar("ind")
	days := []Var{d1, d2}
	m.AddAtLeastIf(Pos(ind), days, ones(2), 2)
	m.AddAtMostIf(Neg(ind), days, ones(2), 1)
	m.AddAtLeast(days, ones(2), 2)
	// the solver would prefer ind false, but the equivalence forbids it
	m.Maximize([]Var{ind}, []int{-5})

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	if !resp.BoolValue(ind) {
		t.Errorf("Expected indicator forced true when the whole window holds")
	}
	if resp.ObjectiveValue != -5 {
		t.Errorf("Expected objective -5, got %d", resp.ObjectiveValue)
	}
}

func TestModelInvalid(t *testing.T) {
	m := NewBuilder()
	v := m.NewBoolVar("x")
	m.AddAtLeast([]Var{v}, []int{1, 2}, 1)

	resp := m.Solve(testLimit)
	if resp.Status != ModelInvalid {
		t.Errorf("Expected MODEL_INVALID, got %s", resp.Status)
	}
}

func TestUnconstrainedModel(t *testing.T) {
	m := NewBuilder()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.Maximize([]Var{a, b}, []int{7, -2})

	resp := m.Solve(testLimit)
	if resp.Status != Optimal {
		t.Fatalf("Expected OPTIMAL, got %s", resp.Status)
	}
	if resp.ObjectiveValue != 7 {
		t.Errorf("Expected objective 7, got %d", resp.ObjectiveValue)
	}
}
