package optimizer

import (
	"testing"
	"time"

	"github.com/arnavshah/optimizer-api-go/pkg/models"
)

const testLimit = 30 * time.Second

func solveInput(t *testing.T, input *models.ProblemInput) *models.SolveResult {
	t.Helper()
	o, err := New(input)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	o.BuildModel()
	return o.Solve(testLimit)
}

func TestSolveBasicCoverage(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "morning", Date: "2025-03-03", StartTime: "09:00", EndTime: "12:00", MinStaff: 1, MaxStaff: 1},
			{ID: "evening", Date: "2025-03-03", StartTime: "13:00", EndTime: "17:00", MinStaff: 1, MaxStaff: 1},
		},
		Employees: []models.Employee{{ID: "e1"}, {ID: "e2"}},
	}

	result := solveInput(t, input)
	if result.Status != "OPTIMAL" {
		t.Fatalf("Expected OPTIMAL, got %s", result.Status)
	}
	if len(result.Assignments) != 2 {
		t.Fatalf("Expected 2 assignments, got %d", len(result.Assignments))
	}
	stats := result.Statistics
	if stats == nil || stats.CoverageStats == nil {
		t.Fatal("Expected coverage statistics on success")
	}
	if stats.CoverageStats.CoveragePercentage != 100.0 {
		t.Errorf("Expected 100%% coverage, got %f", stats.CoverageStats.CoveragePercentage)
	}
	if !stats.IsOptimal {
		t.Errorf("Expected is_optimal to be set")
	}
}

func TestSkillRequirementExcludesUnqualified(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00",
				MinStaff: 1, MaxStaff: 1, RequiredSkills: []string{"forklift"}},
		},
		Employees: []models.Employee{
			{ID: "e1", Skills: []string{"forklift"}},
			{ID: "e2"},
		},
		// the objective would prefer e2, but the skill rule is hard
		Preferences: map[string]models.Preference{
			"e2": {PreferredShifts: []string{"s1"}},
		},
	}

	result := solveInput(t, input)
	if result.Status != "OPTIMAL" {
		t.Fatalf("Expected OPTIMAL, got %s", result.Status)
	}
	if len(result.Assignments) != 1 {
		t.Fatalf("Expected 1 assignment, got %d", len(result.Assignments))
	}
	if result.Assignments[0].EmployeeID != "e1" {
		t.Errorf("Expected the qualified employee, got %s", result.Assignments[0].EmployeeID)
	}
}

func TestUnavailabilityMakesProblemInfeasible(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00", MinStaff: 2, MaxStaff: 2},
		},
		Employees: []models.Employee{
			{ID: "e1", UnavailableDates: []string{"2025-03-03"}},
			{ID: "e2", UnavailableDates: []string{"2025-03-03"}},
		},
	}

	result := solveInput(t, input)
	if result.Status != "INFEASIBLE" {
		t.Fatalf("Expected INFEASIBLE, got %s", result.Status)
	}
	if len(result.Assignments) != 0 {
		t.Errorf("Expected no assignments, got %d", len(result.Assignments))
	}
	if result.ObjectiveValue != nil {
		t.Errorf("Expected no objective value on infeasibility")
	}
	if result.Statistics != nil && result.Statistics.CoverageStats != nil {
		t.Errorf("Expected no coverage stats on infeasibility")
	}
}

func TestWeeklyHourCap(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "mon", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00", MinStaff: 1, MaxStaff: 1},
			{ID: "tue", Date: "2025-03-04", StartTime: "09:00", EndTime: "17:00", MinStaff: 1, MaxStaff: 1},
		},
		Employees: []models.Employee{
			{ID: "e1", MaxHoursPerWeek: 8},
		},
	}

	// One employee, 16 required hours in one ISO week, 8 hour cap.
	result := solveInput(t, input)
	if result.Status != "INFEASIBLE" {
		t.Fatalf("Expected INFEASIBLE, got %s", result.Status)
	}
}

func TestPreferenceObjective(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00", MinStaff: 1, MaxStaff: 1},
		},
		Employees: []models.Employee{{ID: "e1"}, {ID: "e2"}},
		Preferences: map[string]models.Preference{
			"e1": {PreferredShifts: []string{"s1"}},
		},
	}

	result := solveInput(t, input)
	if result.Status != "OPTIMAL" {
		t.Fatalf("Expected OPTIMAL, got %s", result.Status)
	}
	if result.Assignments[0].EmployeeID != "e1" {
		t.Errorf("Expected preferred employee e1, got %s", result.Assignments[0].EmployeeID)
	}
	// +10 preference score at the default weight of 55
	if result.ObjectiveValue == nil || *result.ObjectiveValue != 550 {
		t.Errorf("Expected objective 550, got %v", result.ObjectiveValue)
	}

	// Solving the identical problem again yields the same objective value
	again := solveInput(t, input)
	if again.ObjectiveValue == nil || *again.ObjectiveValue != *result.ObjectiveValue {
		t.Errorf("Expected identical objective on re-solve, got %v vs %v", again.ObjectiveValue, result.ObjectiveValue)
	}
}

func TestAvoidedShiftScoresNegative(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00", MinStaff: 1, MaxStaff: 1},
		},
		Employees: []models.Employee{{ID: "e1"}},
		Preferences: map[string]models.Preference{
			"e1": {AvoidShifts: []string{"s1"}},
		},
		Weights: models.Weights{"employee_preferences": 2},
	}

	// e1 is the only cover, so the avoided assignment happens anyway and
	// the objective pays -10 * 2 for it.
	result := solveInput(t, input)
	if result.Status != "OPTIMAL" {
		t.Fatalf("Expected OPTIMAL, got %s", result.Status)
	}
	if result.ObjectiveValue == nil || *result.ObjectiveValue != -20 {
		t.Errorf("Expected objective -20, got %v", result.ObjectiveValue)
	}
}

func TestConsecutiveDaysPenaltyAvoided(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "mon", Date: "2025-03-03", StartTime: "09:00", EndTime: "13:00", MinStaff: 1, MaxStaff: 1},
			{ID: "tue", Date: "2025-03-04", StartTime: "09:00", EndTime: "13:00", MinStaff: 1, MaxStaff: 1},
		},
		Employees: []models.Employee{
			// e1 would pay a penalty for working both days
			{ID: "e1", MaxConsecutiveDays: 1},
			{ID: "e2", UnavailableDates: []string{"2025-03-04"}},
		},
	}

	result := solveInput(t, input)
	if result.Status != "OPTIMAL" {
		t.Fatalf("Expected OPTIMAL, got %s", result.Status)
	}
	if result.ObjectiveValue == nil || *result.ObjectiveValue != 0 {
		t.Errorf("Expected penalty-free objective 0, got %v", result.ObjectiveValue)
	}
	for _, a := range result.Assignments {
		if a.ShiftID == "mon" && a.EmployeeID != "e2" {
			t.Errorf("Expected e2 on Monday so e1 avoids consecutive days, got %s", a.EmployeeID)
		}
		if a.ShiftID == "tue" && a.EmployeeID != "e1" {
			t.Errorf("Expected e1 on Tuesday (e2 is unavailable), got %s", a.EmployeeID)
		}
	}
}

func TestCoverageStatsPartial(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "12:00"},
			{ID: "s2", Date: "2025-03-03", StartTime: "12:00", EndTime: "15:00"},
			{ID: "s3", Date: "2025-03-04", StartTime: "09:00", EndTime: "12:00"},
			{ID: "s4", Date: "2025-03-04", StartTime: "12:00", EndTime: "15:00"},
		},
		Employees: []models.Employee{{ID: "e1"}},
	}
	o, err := New(input)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	stats := o.coverageStats([]models.Assignment{
		{EmployeeID: "e1", ShiftID: "s1"},
		{EmployeeID: "e1", ShiftID: "s2"},
		{EmployeeID: "e1", ShiftID: "s3"},
	})
	if stats.TotalShifts != 4 || stats.FullyCoveredShifts != 3 {
		t.Fatalf("Expected 3/4 shifts covered, got %d/%d", stats.FullyCoveredShifts, stats.TotalShifts)
	}
	if stats.CoveragePercentage != 75.0 {
		t.Errorf("Expected 75.0%% coverage, got %f", stats.CoveragePercentage)
	}
}

func TestOptimizeValidationErrors(t *testing.T) {
	bad := []*models.ProblemInput{
		{
			Shifts:    []models.Shift{{ID: "s1", Date: "2025-03-03", StartTime: "25:00", EndTime: "17:00"}},
			Employees: []models.Employee{{ID: "e1"}},
		},
		{
			Shifts:    []models.Shift{{ID: "s1", Date: "bad-date", StartTime: "09:00", EndTime: "17:00"}},
			Employees: []models.Employee{{ID: "e1"}},
		},
		{
			Shifts:    []models.Shift{{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00"}},
			Employees: []models.Employee{{ID: "e1"}},
			Preferences: map[string]models.Preference{
				"ghost": {PreferredShifts: []string{"s1"}},
			},
		},
		{
			Shifts: []models.Shift{
				{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00"},
				{ID: "s1", Date: "2025-03-04", StartTime: "09:00", EndTime: "17:00"},
			},
			Employees: []models.Employee{{ID: "e1"}},
		},
	}

	for i, input := range bad {
		result := Optimize(input, testLimit)
		if result.Status != "ERROR" {
			t.Errorf("case %d: expected ERROR, got %s", i, result.Status)
		}
		if result.Error == "" {
			t.Errorf("case %d: expected an error message", i)
		}
	}
}

func TestOptimizeEmptyProblem(t *testing.T) {
	result := Optimize(&models.ProblemInput{}, testLimit)
	if result.Status != "OPTIMAL" {
		t.Fatalf("Expected OPTIMAL for empty problem, got %s", result.Status)
	}
	if len(result.Assignments) != 0 {
		t.Errorf("Expected no assignments, got %d", len(result.Assignments))
	}
	if result.Statistics.CoverageStats.CoveragePercentage != 0 {
		t.Errorf("Expected 0%% coverage with no shifts, got %f", result.Statistics.CoverageStats.CoveragePercentage)
	}
}

func TestDefaultsApplied(t *testing.T) {
	input := &models.ProblemInput{
		Shifts:    []models.Shift{{ID: "s1", Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00"}},
		Employees: []models.Employee{{ID: "e1"}},
	}
	o, err := New(input)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	shift := o.shifts["s1"]
	if shift.MinStaff != 1 || shift.MaxStaff != 3 {
		t.Errorf("Expected staffing defaults 1..3, got %d..%d", shift.MinStaff, shift.MaxStaff)
	}
	emp := o.employees["e1"]
	if emp.MaxHoursPerWeek != 40 || emp.MaxConsecutiveDays != 5 {
		t.Errorf("Expected employee defaults 40h/5d, got %dh/%dd", emp.MaxHoursPerWeek, emp.MaxConsecutiveDays)
	}
}
