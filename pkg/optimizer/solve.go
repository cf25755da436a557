package optimizer

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/arnavshah/optimizer-api-go/pkg/cpsat"
	"github.com/arnavshah/optimizer-api-go/pkg/models"
)

// DefaultTimeLimit is the solver budget used when the caller passes none.
const DefaultTimeLimit = cpsat.DefaultTimeLimit

// Solve runs the solver against the built model within the given wall-clock
// budget and classifies the outcome. On OPTIMAL or FEASIBLE the result
// carries the extracted schedule and coverage statistics; on any other
// status it carries neither, and the caller decides whether to re-invoke
// with a modified problem. There are no automatic retries.
func (o *Optimizer) Solve(timeLimit time.Duration) *models.SolveResult {
	resp := o.builder.Solve(timeLimit)

	result := &models.SolveResult{
		Status:           string(resp.Status),
		SolveTimeSeconds: resp.WallTime.Seconds(),
		Assignments:      []models.Assignment{},
		Statistics: &models.Statistics{
			NumBranches:  resp.Branches,
			NumConflicts: resp.Conflicts,
			IsOptimal:    resp.Status == cpsat.Optimal,
		},
	}

	if resp.Status == cpsat.Optimal || resp.Status == cpsat.Feasible {
		objective := resp.ObjectiveValue
		result.ObjectiveValue = &objective
		result.Assignments = o.extractAssignments(resp)
		result.Statistics.TotalAssignedShifts = len(result.Assignments)
		result.Statistics.CoverageStats = o.coverageStats(result.Assignments)
	}
	return result
}

// extractAssignments converts every true assignment variable into a
// schedule entry, annotated with the shift's date, times and duration.
func (o *Optimizer) extractAssignments(resp *cpsat.Response) []models.Assignment {
	assignments := []models.Assignment{}
	for _, shiftID := range o.shiftIDs {
		shift := o.shifts[shiftID]
		for _, empID := range o.employeeIDs {
			if !resp.BoolValue(o.assignVar(empID, shiftID)) {
				continue
			}
			assignments = append(assignments, models.Assignment{
				EmployeeID: empID,
				ShiftID:    shiftID,
				Date:       shift.Date,
				StartTime:  shift.StartTime,
				EndTime:    shift.EndTime,
				Hours:      o.info[shiftID].hours,
			})
		}
	}
	return assignments
}

// coverageStats counts how many shifts reached their minimum staffing in
// the given assignment set. The percentage is 0 when there are no shifts.
func (o *Optimizer) coverageStats(assignments []models.Assignment) *models.CoverageStats {
	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.ShiftID]++
	}

	stats := &models.CoverageStats{TotalShifts: len(o.shifts)}
	for shiftID, shift := range o.shifts {
		if counts[shiftID] >= shift.MinStaff {
			stats.FullyCoveredShifts++
		}
	}
	if stats.TotalShifts > 0 {
		stats.CoveragePercentage = float64(stats.FullyCoveredShifts) / float64(stats.TotalShifts) * 100
	}
	return stats
}

// Optimize validates the input, builds the model and solves it, converting
// every failure mode into a result payload: validation errors and panics
// become an ERROR status instead of escaping to the caller.
func Optimize(input *models.ProblemInput, timeLimit time.Duration) (result *models.SolveResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &models.SolveResult{
				Status:      "ERROR",
				Assignments: []models.Assignment{},
				Error:       fmt.Sprint(r),
				Traceback:   string(debug.Stack()),
			}
		}
	}()

	o, err := New(input)
	if err != nil {
		return &models.SolveResult{
			Status:      "ERROR",
			Assignments: []models.Assignment{},
			Error:       err.Error(),
		}
	}
	o.BuildModel()
	return o.Solve(timeLimit)
}
