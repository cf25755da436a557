package models

// Shift represents a staffed time interval on a specific date
type Shift struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`       // YYYY-MM-DD
	StartTime      string   `json:"start_time"` // HH:MM
	EndTime        string   `json:"end_time"`   // HH:MM, may be before start for overnight shifts
	MinStaff       int      `json:"min_staff"`
	MaxStaff       int      `json:"max_staff"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

// Employee represents a worker available for shifts
type Employee struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	UnavailableDates   []string `json:"unavailable_dates,omitempty"`
	MaxHoursPerWeek    int      `json:"max_hours_per_week,omitempty"`
	MaxConsecutiveDays int      `json:"max_consecutive_days,omitempty"`
}

// Preference holds one employee's preferred and avoided shifts.
// Shifts in neither list are neutral.
type Preference struct {
	PreferredShifts []string `json:"preferred_shifts,omitempty"`
	AvoidShifts     []string `json:"avoid_shifts,omitempty"`
}

// Weights maps constraint category names to non-negative weights
type Weights map[string]float64

// DefaultWeights returns the built-in weight table. Only the preference and
// consecutive-days weights feed the objective; the rest are accepted for
// forward compatibility.
func DefaultWeights() Weights {
	return Weights{
		"shift_coverage":       100.0,
		"no_double_booking":    90.0,
		"skill_requirements":   85.0,
		"availability":         80.0,
		"max_hours_per_week":   75.0,
		"employee_preferences": 55.0,
		"workload_fairness":    40.0,
		"consecutive_days":     30.0,
		"rest_periods":         25.0,
		"shift_continuity":     20.0,
	}
}

// Get returns the weight for a category, falling back to the given default
// when the category is absent from the table.
func (w Weights) Get(category string, fallback float64) float64 {
	if v, ok := w[category]; ok {
		return v
	}
	return fallback
}

// ProblemInput is the data structure for the optimization endpoint
type ProblemInput struct {
	Shifts      []Shift               `json:"shifts"`
	Employees   []Employee            `json:"employees"`
	Skills      map[string][]string   `json:"skills,omitempty"`
	Preferences map[string]Preference `json:"preferences,omitempty"`
	Constraints map[string]any        `json:"constraints,omitempty"`
	Weights     Weights               `json:"weights,omitempty"`
}

// Assignment represents one employee working one shift in a solution
type Assignment struct {
	EmployeeID string `json:"employee_id"`
	ShiftID    string `json:"shift_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Hours      int    `json:"hours"`
}

// CoverageStats summarizes how well the solution covers the shifts
type CoverageStats struct {
	TotalShifts        int     `json:"total_shifts"`
	FullyCoveredShifts int     `json:"fully_covered_shifts"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}

// Statistics holds solver counters for one solve invocation
type Statistics struct {
	NumBranches         int64          `json:"num_branches"`
	NumConflicts        int64          `json:"num_conflicts"`
	IsOptimal           bool           `json:"is_optimal"`
	TotalAssignedShifts int            `json:"total_assigned_shifts,omitempty"`
	CoverageStats       *CoverageStats `json:"coverage_stats,omitempty"`
}

// SolveResult is the data structure for the optimization result.
// Status is one of OPTIMAL, FEASIBLE, INFEASIBLE, MODEL_INVALID, UNKNOWN
// or ERROR; assignments and coverage stats are only present for the first two.
type SolveResult struct {
	Status           string       `json:"status"`
	ObjectiveValue   *int64       `json:"objective_value"`
	SolveTimeSeconds float64      `json:"solve_time_seconds"`
	Assignments      []Assignment `json:"assignments"`
	Statistics       *Statistics  `json:"statistics,omitempty"`
	Error            string       `json:"error,omitempty"`
	Traceback        string       `json:"traceback,omitempty"`
}

// Success reports whether the result carries a usable schedule
func (r *SolveResult) Success() bool {
	return r.Status == "OPTIMAL" || r.Status == "FEASIBLE"
}
