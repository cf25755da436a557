package optimizer

import "github.com/arnavshah/optimizer-api-go/pkg/cpsat"

// All constraints in this file are hard: any violation makes the whole
// problem infeasible, none of them is traded off against the objective.

// addCoverageConstraints bounds each shift's headcount:
// min_staff <= assigned <= max_staff.
func (o *Optimizer) addCoverageConstraints() {
	for _, shiftID := range o.shiftIDs {
		shift := o.shifts[shiftID]
		vars := make([]cpsat.Var, len(o.employeeIDs))
		coeffs := make([]int, len(o.employeeIDs))
		for i, empID := range o.employeeIDs {
			vars[i] = o.assignVar(empID, shiftID)
			coeffs[i] = 1
		}
		o.builder.AddAtLeast(vars, coeffs, shift.MinStaff)
		o.builder.AddAtMost(vars, coeffs, shift.MaxStaff)
	}
}

// addNoDoubleBookingConstraints forbids an employee from working two
// time-overlapping shifts on the same date: within every overlap group, at
// most one of the employee's assignment variables may be true.
func (o *Optimizer) addNoDoubleBookingConstraints() {
	byDate, dates := o.shiftsByDate()
	for _, empID := range o.employeeIDs {
		for _, date := range dates {
			for _, group := range o.overlapGroups(byDate[date]) {
				vars := make([]cpsat.Var, len(group))
				coeffs := make([]int, len(group))
				for i, shiftID := range group {
					vars[i] = o.assignVar(empID, shiftID)
					coeffs[i] = 1
				}
				o.builder.AddAtMost(vars, coeffs, 1)
			}
		}
	}
}

// addSkillRequirementConstraints forces the assignment variable to false
// for every employee whose skills do not cover a shift's requirements.
// This is a point constraint, not a penalty.
func (o *Optimizer) addSkillRequirementConstraints() {
	for _, shiftID := range o.shiftIDs {
		shift := o.shifts[shiftID]
		if len(shift.RequiredSkills) == 0 {
			continue
		}
		for _, empID := range o.employeeIDs {
			if !hasAllSkills(o.employees[empID].Skills, shift.RequiredSkills) {
				v := o.assignVar(empID, shiftID)
				o.builder.AddEquality([]cpsat.Var{v}, []int{1}, 0)
			}
		}
	}
}

func hasAllSkills(skills, required []string) bool {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[s] = true
	}
	for _, r := range required {
		if !have[r] {
			return false
		}
	}
	return true
}

// addAvailabilityConstraints forces assignments to false on dates the
// employee declared unavailable.
func (o *Optimizer) addAvailabilityConstraints() {
	for _, empID := range o.employeeIDs {
		emp := o.employees[empID]
		if len(emp.UnavailableDates) == 0 {
			continue
		}
		unavailable := make(map[string]bool, len(emp.UnavailableDates))
		for _, date := range emp.UnavailableDates {
			unavailable[date] = true
		}
		for _, shiftID := range o.shiftIDs {
			if unavailable[o.shifts[shiftID].Date] {
				v := o.assignVar(empID, shiftID)
				o.builder.AddEquality([]cpsat.Var{v}, []int{1}, 0)
			}
		}
	}
}

// addMaxHoursConstraints caps each employee's assigned hours per ISO week:
// sum(assignment * shift hours) <= max_hours_per_week.
func (o *Optimizer) addMaxHoursConstraints() {
	byWeek := make(map[string][]string)
	var weeks []string
	for _, shiftID := range o.shiftIDs {
		week := o.info[shiftID].week
		if _, seen := byWeek[week]; !seen {
			weeks = append(weeks, week)
		}
		byWeek[week] = append(byWeek[week], shiftID)
	}

	for _, empID := range o.employeeIDs {
		emp := o.employees[empID]
		for _, week := range weeks {
			shiftIDs := byWeek[week]
			vars := make([]cpsat.Var, len(shiftIDs))
			coeffs := make([]int, len(shiftIDs))
			for i, shiftID := range shiftIDs {
				vars[i] = o.assignVar(empID, shiftID)
				coeffs[i] = o.info[shiftID].hours
			}
			o.builder.AddAtMost(vars, coeffs, emp.MaxHoursPerWeek)
		}
	}
}
