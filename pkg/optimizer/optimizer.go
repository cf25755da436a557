// Package optimizer builds a constraint-satisfaction model for staff shift
// scheduling and extracts schedules from its solutions. Hard rules
// (coverage, double booking, skills, availability, weekly hours) become
// constraints over one boolean variable per (employee, shift) pair; soft
// rules (preferences, consecutive workdays) become a weighted objective.
// The search itself is delegated to the cpsat solver.
package optimizer

import (
	"fmt"
	"sort"

	"github.com/arnavshah/optimizer-api-go/pkg/cpsat"
	"github.com/arnavshah/optimizer-api-go/pkg/models"
)

const (
	defaultMinStaff           = 1
	defaultMaxStaffSlack      = 2 // max_staff defaults to min_staff + 2
	defaultMaxHoursPerWeek    = 40
	defaultMaxConsecutiveDays = 5
)

// shiftInfo caches the parsed time data for one shift.
type shiftInfo struct {
	startMin int
	endMin   int
	hours    int
	week     string
}

// pairKey identifies one (employee, shift) decision variable.
type pairKey struct {
	employeeID string
	shiftID    string
}

// Optimizer turns a validated scheduling problem into a constraint model
// and decodes solver solutions back into schedules. One instance serves
// exactly one solve; it is not safe for concurrent use.
type Optimizer struct {
	shifts      map[string]*models.Shift
	employees   map[string]*models.Employee
	preferences map[string]models.Preference
	weights     models.Weights

	// sorted ID slices keep model construction deterministic
	shiftIDs    []string
	employeeIDs []string

	info        map[string]shiftInfo
	builder     *cpsat.Builder
	assignments map[pairKey]cpsat.Var
}

// New validates the problem input and prepares an optimizer for it.
// Validation failures are fatal: no model is built and no defaults are
// partially applied.
func New(input *models.ProblemInput) (*Optimizer, error) {
	o := &Optimizer{
		shifts:      make(map[string]*models.Shift, len(input.Shifts)),
		employees:   make(map[string]*models.Employee, len(input.Employees)),
		preferences: input.Preferences,
		weights:     input.Weights,
		info:        make(map[string]shiftInfo, len(input.Shifts)),
	}
	if o.preferences == nil {
		o.preferences = map[string]models.Preference{}
	}
	if o.weights == nil {
		o.weights = models.DefaultWeights()
	}
	for category, value := range o.weights {
		if value < 0 {
			return nil, fmt.Errorf("weight %q must be non-negative, got %v", category, value)
		}
	}

	for i := range input.Shifts {
		shift := input.Shifts[i] // copy: defaults must not mutate the input
		if shift.ID == "" {
			return nil, fmt.Errorf("shift %d: missing id", i)
		}
		if _, dup := o.shifts[shift.ID]; dup {
			return nil, fmt.Errorf("duplicate shift id %q", shift.ID)
		}
		week, err := WeekKey(shift.Date)
		if err != nil {
			return nil, fmt.Errorf("shift %q: %w", shift.ID, err)
		}
		startMin, err := ParseTimeToMinutes(shift.StartTime)
		if err != nil {
			return nil, fmt.Errorf("shift %q: %w", shift.ID, err)
		}
		endMin, err := ParseTimeToMinutes(shift.EndTime)
		if err != nil {
			return nil, fmt.Errorf("shift %q: %w", shift.ID, err)
		}
		if shift.MinStaff < 0 {
			return nil, fmt.Errorf("shift %q: min_staff must not be negative", shift.ID)
		}
		if shift.MinStaff == 0 {
			shift.MinStaff = defaultMinStaff
		}
		if shift.MaxStaff == 0 {
			shift.MaxStaff = shift.MinStaff + defaultMaxStaffSlack
		}
		if shift.MaxStaff < shift.MinStaff {
			return nil, fmt.Errorf("shift %q: max_staff %d below min_staff %d", shift.ID, shift.MaxStaff, shift.MinStaff)
		}
		o.shifts[shift.ID] = &shift
		o.info[shift.ID] = shiftInfo{
			startMin: startMin,
			endMin:   endMin,
			hours:    DurationHours(startMin, endMin),
			week:     week,
		}
		o.shiftIDs = append(o.shiftIDs, shift.ID)
	}

	for i := range input.Employees {
		emp := input.Employees[i]
		if emp.ID == "" {
			return nil, fmt.Errorf("employee %d: missing id", i)
		}
		if _, dup := o.employees[emp.ID]; dup {
			return nil, fmt.Errorf("duplicate employee id %q", emp.ID)
		}
		for _, date := range emp.UnavailableDates {
			if _, err := WeekKey(date); err != nil {
				return nil, fmt.Errorf("employee %q: %w", emp.ID, err)
			}
		}
		if emp.MaxHoursPerWeek < 0 {
			return nil, fmt.Errorf("employee %q: max_hours_per_week must not be negative", emp.ID)
		}
		if emp.MaxHoursPerWeek == 0 {
			emp.MaxHoursPerWeek = defaultMaxHoursPerWeek
		}
		if emp.MaxConsecutiveDays < 0 {
			return nil, fmt.Errorf("employee %q: max_consecutive_days must not be negative", emp.ID)
		}
		if emp.MaxConsecutiveDays == 0 {
			emp.MaxConsecutiveDays = defaultMaxConsecutiveDays
		}
		o.employees[emp.ID] = &emp
		o.employeeIDs = append(o.employeeIDs, emp.ID)
	}

	for empID, pref := range o.preferences {
		if _, ok := o.employees[empID]; !ok {
			return nil, fmt.Errorf("preferences reference unknown employee %q", empID)
		}
		for _, shiftID := range pref.PreferredShifts {
			if _, ok := o.shifts[shiftID]; !ok {
				return nil, fmt.Errorf("employee %q prefers unknown shift %q", empID, shiftID)
			}
		}
		for _, shiftID := range pref.AvoidShifts {
			if _, ok := o.shifts[shiftID]; !ok {
				return nil, fmt.Errorf("employee %q avoids unknown shift %q", empID, shiftID)
			}
		}
	}

	sort.Strings(o.shiftIDs)
	sort.Strings(o.employeeIDs)
	return o, nil
}

// BuildModel creates the decision variables and populates the solver model
// with every hard constraint and the weighted objective.
func (o *Optimizer) BuildModel() {
	o.builder = cpsat.NewBuilder()
	o.assignments = make(map[pairKey]cpsat.Var, len(o.shiftIDs)*len(o.employeeIDs))

	for _, shiftID := range o.shiftIDs {
		for _, empID := range o.employeeIDs {
			name := fmt.Sprintf("assign_e%s_s%s", empID, shiftID)
			o.assignments[pairKey{empID, shiftID}] = o.builder.NewBoolVar(name)
		}
	}

	o.addCoverageConstraints()
	o.addNoDoubleBookingConstraints()
	o.addSkillRequirementConstraints()
	o.addAvailabilityConstraints()
	o.addMaxHoursConstraints()
	o.buildObjective()
}

// assignVar returns the decision variable for one (employee, shift) pair.
func (o *Optimizer) assignVar(employeeID, shiftID string) cpsat.Var {
	return o.assignments[pairKey{employeeID, shiftID}]
}

// shiftsByDate groups the shift IDs per calendar date, preserving the
// deterministic shift ordering inside each group.
func (o *Optimizer) shiftsByDate() (map[string][]string, []string) {
	byDate := make(map[string][]string)
	var dates []string
	for _, shiftID := range o.shiftIDs {
		date := o.shifts[shiftID].Date
		if _, seen := byDate[date]; !seen {
			dates = append(dates, date)
		}
		byDate[date] = append(byDate[date], shiftID)
	}
	sort.Strings(dates)
	return byDate, dates
}
