package optimizer

import (
	"fmt"

	"github.com/arnavshah/optimizer-api-go/pkg/cpsat"
)

// Soft-rule weights are truncated to integers before entering the linear
// objective. The workload_fairness, rest_periods and shift_continuity
// weights are accepted in the table but contribute no terms yet.

// preferenceScore returns +10 for a preferred shift, -10 for an avoided
// one and 0 for a neutral pairing.
func (o *Optimizer) preferenceScore(employeeID, shiftID string) int {
	pref, ok := o.preferences[employeeID]
	if !ok {
		return 0
	}
	for _, id := range pref.PreferredShifts {
		if id == shiftID {
			return 10
		}
	}
	for _, id := range pref.AvoidShifts {
		if id == shiftID {
			return -10
		}
	}
	return 0
}

// buildObjective assembles the maximization target: preference terms minus
// consecutive-workday penalties.
func (o *Optimizer) buildObjective() {
	var (
		objVars   []cpsat.Var
		objCoeffs []int
	)

	prefWeight := int(o.weights.Get("employee_preferences", 55.0))
	if prefWeight > 0 {
		for _, shiftID := range o.shiftIDs {
			for _, empID := range o.employeeIDs {
				score := o.preferenceScore(empID, shiftID)
				if score == 0 {
					continue
				}
				objVars = append(objVars, o.assignVar(empID, shiftID))
				objCoeffs = append(objCoeffs, score*prefWeight)
			}
		}
	}

	consecWeight := int(o.weights.Get("consecutive_days", 30.0))
	if consecWeight > 0 {
		penaltyVars := o.consecutiveDayPenalties()
		for _, v := range penaltyVars {
			objVars = append(objVars, v)
			objCoeffs = append(objCoeffs, -consecWeight)
		}
	}

	if len(objVars) > 0 {
		o.builder.Maximize(objVars, objCoeffs)
	}
}

// consecutiveDayPenalties returns one indicator per (employee, window of
// max_consecutive_days+1 consecutive worked dates). Each indicator is made
// logically equivalent to "every day in the window is worked" with two
// reified constraints; a one-sided implication would let the solver leave
// earned penalties unpaid. Employees whose horizon is shorter than a full
// window contribute nothing.
func (o *Optimizer) consecutiveDayPenalties() []cpsat.Var {
	byDate, dates := o.shiftsByDate()

	var penalties []cpsat.Var
	for _, empID := range o.employeeIDs {
		windowLen := o.employees[empID].MaxConsecutiveDays + 1
		if len(dates) < windowLen {
			continue
		}

		// One day-worked indicator per date: the OR of the employee's
		// assignment variables on that date.
		dayWorked := make([]cpsat.Var, len(dates))
		for i, date := range dates {
			shiftIDs := byDate[date]
			sources := make([]cpsat.Var, len(shiftIDs))
			for j, shiftID := range shiftIDs {
				sources[j] = o.assignVar(empID, shiftID)
			}
			dayWorked[i] = o.builder.NewBoolVar(fmt.Sprintf("worked_e%s_d%s", empID, date))
			o.builder.AddMaxEquality(dayWorked[i], sources)
		}

		for i := 0; i+windowLen <= len(dates); i++ {
			window := dayWorked[i : i+windowLen]
			ones := make([]int, len(window))
			for j := range ones {
				ones[j] = 1
			}
			allWorked := o.builder.NewBoolVar(fmt.Sprintf("consec_e%s_w%d", empID, i))
			o.builder.AddAtLeastIf(cpsat.Pos(allWorked), window, ones, len(window))
			o.builder.AddAtMostIf(cpsat.Neg(allWorked), window, ones, len(window)-1)
			penalties = append(penalties, allWorked)
		}
	}
	return penalties
}
