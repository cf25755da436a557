// Package cpsat provides a small CP-SAT style model builder for problems
// over boolean decision variables: linear (in)equality constraints, reified
// constraints enforced under an indicator literal, boolean max-equality and
// a linear objective to maximize. Models are compiled to pseudo-boolean
// constraints and solved with the gophersat engine.
package cpsat

import "fmt"

// Var is a handle to a boolean decision variable in a Builder.
type Var int

// Lit is a variable or its negation, used as a reification indicator.
type Lit struct {
	Var     Var
	Negated bool
}

// Pos returns the positive literal of v.
func Pos(v Var) Lit { return Lit{Var: v} }

// Neg returns the negated literal of v.
func Neg(v Var) Lit { return Lit{Var: v, Negated: true} }

// term is a positively-weighted DIMACS-style literal: variable index+1,
// negative for a negated occurrence.
type term struct {
	lit    int
	weight int
}

// atLeast is a normalized constraint sum(weight_i * lit_i) >= bound with all
// weights positive. Every constraint the builder accepts is lowered to this
// form before solving.
type atLeast struct {
	terms []term
	bound int
}

// Builder assembles a boolean optimization model.
type Builder struct {
	names       []string
	constraints []atLeast
	objVars     []Var
	objCoeffs   []int
	hasObj      bool
	unsat       bool  // a constraint was provably unsatisfiable at build time
	invalid     error // first structural misuse, reported as MODEL_INVALID
}

// NewBuilder returns an empty model.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewBoolVar creates a fresh boolean variable.
func (b *Builder) NewBoolVar(name string) Var {
	b.names = append(b.names, name)
	return Var(len(b.names) - 1)
}

// NumVars returns the number of variables created so far.
func (b *Builder) NumVars() int { return len(b.names) }

func (b *Builder) setInvalid(format string, args ...any) {
	if b.invalid == nil {
		b.invalid = fmt.Errorf(format, args...)
	}
}

func (b *Builder) checkVar(v Var) bool {
	if int(v) < 0 || int(v) >= len(b.names) {
		b.setInvalid("unknown variable %d", v)
		return false
	}
	return true
}

// dimacs returns the 1-based solver literal for l.
func (b *Builder) dimacs(l Lit) int {
	d := int(l.Var) + 1
	if l.Negated {
		return -d
	}
	return d
}

// normalize lowers sum(coeffs_i * vars_i) >= bound to positive-weight form.
// A negative coefficient c*x is rewritten as |c|*(not x) - |c|, shifting the
// bound by |c|. Zero coefficients are dropped.
func (b *Builder) normalize(vars []Var, coeffs []int, bound int) (atLeast, bool) {
	if len(vars) != len(coeffs) {
		b.setInvalid("constraint has %d variables but %d coefficients", len(vars), len(coeffs))
		return atLeast{}, false
	}
	c := atLeast{bound: bound}
	for i, v := range vars {
		if !b.checkVar(v) {
			return atLeast{}, false
		}
		w := coeffs[i]
		switch {
		case w > 0:
			c.terms = append(c.terms, term{lit: int(v) + 1, weight: w})
		case w < 0:
			c.terms = append(c.terms, term{lit: -(int(v) + 1), weight: -w})
			c.bound += -w
		}
	}
	return c, true
}

func (b *Builder) add(c atLeast) {
	if c.bound <= 0 {
		return // trivially satisfied
	}
	total := 0
	for _, t := range c.terms {
		total += t.weight
	}
	if total < c.bound {
		b.unsat = true // no assignment can reach the bound
		return
	}
	b.constraints = append(b.constraints, c)
}

// AddAtLeast adds sum(coeffs_i * vars_i) >= bound.
func (b *Builder) AddAtLeast(vars []Var, coeffs []int, bound int) {
	if c, ok := b.normalize(vars, coeffs, bound); ok {
		b.add(c)
	}
}

// AddAtMost adds sum(coeffs_i * vars_i) <= bound.
func (b *Builder) AddAtMost(vars []Var, coeffs []int, bound int) {
	neg := make([]int, len(coeffs))
	for i, w := range coeffs {
		neg[i] = -w
	}
	b.AddAtLeast(vars, neg, -bound)
}

// AddEquality adds sum(coeffs_i * vars_i) == bound.
func (b *Builder) AddEquality(vars []Var, coeffs []int, bound int) {
	b.AddAtLeast(vars, coeffs, bound)
	b.AddAtMost(vars, coeffs, bound)
}

// AddBoolOr adds the clause lit_1 or ... or lit_n.
func (b *Builder) AddBoolOr(lits ...Lit) {
	c := atLeast{bound: 1}
	for _, l := range lits {
		if !b.checkVar(l.Var) {
			return
		}
		c.terms = append(c.terms, term{lit: b.dimacs(l), weight: 1})
	}
	b.add(c)
}

// reify weakens c so it is only enforced when ind is true, by letting the
// negation of ind contribute the full bound.
func (b *Builder) reify(ind Lit, c atLeast) {
	if !b.checkVar(ind.Var) {
		return
	}
	if c.bound <= 0 {
		return
	}
	neg := Lit{Var: ind.Var, Negated: !ind.Negated}
	c.terms = append(c.terms, term{lit: b.dimacs(neg), weight: c.bound})
	b.add(c)
}

// AddAtLeastIf adds sum(coeffs_i * vars_i) >= bound, enforced only when the
// indicator literal is true.
func (b *Builder) AddAtLeastIf(ind Lit, vars []Var, coeffs []int, bound int) {
	if c, ok := b.normalize(vars, coeffs, bound); ok {
		b.reify(ind, c)
	}
}

// AddAtMostIf adds sum(coeffs_i * vars_i) <= bound, enforced only when the
// indicator literal is true.
func (b *Builder) AddAtMostIf(ind Lit, vars []Var, coeffs []int, bound int) {
	neg := make([]int, len(coeffs))
	for i, w := range coeffs {
		neg[i] = -w
	}
	b.AddAtLeastIf(ind, vars, neg, -bound)
}

// AddMaxEquality constrains target to be the logical OR of sources.
// With no sources, target is forced false.
func (b *Builder) AddMaxEquality(target Var, sources []Var) {
	if !b.checkVar(target) {
		return
	}
	if len(sources) == 0 {
		b.AddBoolOr(Neg(target))
		return
	}
	long := make([]Lit, 0, len(sources)+1)
	long = append(long, Neg(target))
	for _, s := range sources {
		if !b.checkVar(s) {
			return
		}
		b.AddBoolOr(Neg(s), Pos(target))
		long = append(long, Pos(s))
	}
	b.AddBoolOr(long...)
}

// Maximize sets the linear objective sum(coeffs_i * vars_i) to maximize.
func (b *Builder) Maximize(vars []Var, coeffs []int) {
	if len(vars) != len(coeffs) {
		b.setInvalid("objective has %d variables but %d coefficients", len(vars), len(coeffs))
		return
	}
	for _, v := range vars {
		if !b.checkVar(v) {
			return
		}
	}
	b.objVars = append([]Var(nil), vars...)
	b.objCoeffs = append([]int(nil), coeffs...)
	b.hasObj = true
}
