package cpsat

import (
	"time"

	"github.com/crillab/gophersat/solver"
)

// Status is the terminal state of one solve invocation.
type Status string

const (
	// Optimal means a solution was found and proven best.
	Optimal Status = "OPTIMAL"
	// Feasible means a solution was found but the time budget ran out
	// before optimality was proven.
	Feasible Status = "FEASIBLE"
	// Infeasible means the constraints admit no assignment.
	Infeasible Status = "INFEASIBLE"
	// ModelInvalid means the model was structurally misused.
	ModelInvalid Status = "MODEL_INVALID"
	// Unknown means the time budget ran out before any conclusion.
	Unknown Status = "UNKNOWN"
)

// DefaultTimeLimit bounds a solve when the caller does not.
const DefaultTimeLimit = 300 * time.Second

// Response carries the outcome of a solve.
type Response struct {
	Status         Status
	ObjectiveValue int64
	WallTime       time.Duration
	Branches       int64
	Conflicts      int64
	values         []bool
}

// BoolValue returns the solved value of v, false for statuses without a
// solution.
func (r *Response) BoolValue(v Var) bool {
	if r.values == nil || int(v) < 0 || int(v) >= len(r.values) {
		return false
	}
	return r.values[int(v)]
}

// Solve searches for an assignment satisfying every constraint and, when an
// objective is set, maximizes it by iterative bound strengthening: each
// incumbent adds the constraint objective >= incumbent+1 and the search
// repeats until the bound is proven unreachable or the budget expires.
func (b *Builder) Solve(timeLimit time.Duration) *Response {
	start := time.Now()
	resp := &Response{}
	defer func() { resp.WallTime = time.Since(start) }()

	if b.invalid != nil {
		resp.Status = ModelInvalid
		return resp
	}
	if b.unsat {
		resp.Status = Infeasible
		return resp
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	deadline := start.Add(timeLimit)

	if len(b.constraints) == 0 {
		// Unconstrained model: set each variable by its objective sign.
		resp.Status = Optimal
		resp.values = make([]bool, len(b.names))
		for i, v := range b.objVars {
			if b.objCoeffs[i] > 0 {
				resp.values[int(v)] = true
			}
		}
		resp.ObjectiveValue = b.objectiveOf(resp.values)
		return resp
	}

	var (
		incumbent    []bool
		incumbentObj int64
		haveModel    bool
	)

	for {
		constrs := b.compile(incumbentObj, haveModel)
		if constrs == nil {
			// Strengthened bound exceeds what the objective can reach.
			resp.Status = Optimal
			break
		}
		pb := solver.ParsePBConstrs(constrs)
		s := solver.New(pb)

		res := b.runBounded(s, time.Until(deadline))
		resp.Branches += int64(s.Stats.NbDecisions)
		resp.Conflicts += int64(s.Stats.NbConflicts)

		if res.Status == solver.Unsat {
			if haveModel {
				resp.Status = Optimal
			} else {
				resp.Status = Infeasible
			}
			break
		}
		if res.Status != solver.Sat {
			if haveModel {
				resp.Status = Feasible
			} else {
				resp.Status = Unknown
			}
			break
		}

		incumbent = b.valuesFrom(res.Model)
		incumbentObj = b.objectiveOf(incumbent)
		haveModel = true

		if !b.hasObj {
			resp.Status = Optimal
			break
		}
		if !time.Now().Before(deadline) {
			resp.Status = Feasible
			break
		}
	}

	if haveModel && (resp.Status == Optimal || resp.Status == Feasible) {
		resp.values = incumbent
		resp.ObjectiveValue = incumbentObj
	}
	return resp
}

// compile renders the model as gophersat constraints, adding the objective
// strengthening bound once an incumbent exists. It returns nil when the
// strengthened bound is provably unreachable.
func (b *Builder) compile(incumbentObj int64, strengthen bool) []solver.PBConstr {
	constrs := make([]solver.PBConstr, 0, len(b.constraints)+1)
	for _, c := range b.constraints {
		constrs = append(constrs, pbConstr(c))
	}
	if strengthen && b.hasObj {
		bound, ok := b.objectiveBound(incumbentObj + 1)
		if !ok {
			return nil
		}
		if bound.bound > 0 {
			constrs = append(constrs, pbConstr(bound))
		}
	}
	return constrs
}

func pbConstr(c atLeast) solver.PBConstr {
	lits := make([]int, len(c.terms))
	weights := make([]int, len(c.terms))
	for i, t := range c.terms {
		lits[i] = t.lit
		weights[i] = t.weight
	}
	return solver.GtEq(lits, weights, c.bound)
}

// objectiveBound normalizes objective >= target to positive-weight form.
// ok is false when the bound exceeds the largest reachable objective value.
func (b *Builder) objectiveBound(target int64) (atLeast, bool) {
	c, ok := b.normalize(b.objVars, b.objCoeffs, 0)
	if !ok {
		return atLeast{}, false
	}
	c.bound += int(target)
	total := 0
	for _, t := range c.terms {
		total += t.weight
	}
	if total < c.bound {
		return atLeast{}, false
	}
	return c, true
}

// runBounded runs the search, asking the solver to stop at the deadline.
func (b *Builder) runBounded(s *solver.Solver, remaining time.Duration) solver.Result {
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	stop := make(chan struct{}, 1)
	done := make(chan solver.Result, 1)
	go func() {
		done <- s.Optimal(nil, stop)
	}()
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case res := <-done:
		return res
	case <-timer.C:
		stop <- struct{}{}
		return <-done
	}
}

// valuesFrom copies a gophersat model into a per-variable value slice.
// The model is indexed by variable, so Var v is model[v].
func (b *Builder) valuesFrom(model []bool) []bool {
	values := make([]bool, len(b.names))
	copy(values, model)
	return values
}

func (b *Builder) objectiveOf(values []bool) int64 {
	var sum int64
	for i, v := range b.objVars {
		if values[int(v)] {
			sum += int64(b.objCoeffs[i])
		}
	}
	return sum
}
