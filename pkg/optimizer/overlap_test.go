package optimizer

import (
	"testing"

	"github.com/arnavshah/optimizer-api-go/pkg/models"
)

func TestOverlapGroups(t *testing.T) {
	input := &models.ProblemInput{
		Shifts: []models.Shift{
			{ID: "A", Date: "2025-03-03", StartTime: "09:00", EndTime: "13:00"},
			{ID: "B", Date: "2025-03-03", StartTime: "12:00", EndTime: "16:00"},
			{ID: "C", Date: "2025-03-03", StartTime: "16:00", EndTime: "20:00"},
		},
		Employees: []models.Employee{{ID: "e1"}},
	}
	o, err := New(input)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	groups := o.overlapGroups([]string{"A", "B", "C"})
	if len(groups) != 1 {
		t.Fatalf("Expected 1 overlap group, got %d", len(groups))
	}
	group := groups[0]
	if len(group) != 2 || group[0] != "A" || group[1] != "B" {
		t.Errorf("Expected group [A B], got %v", group)
	}

	// B ends exactly when C starts: open intervals, no overlap
	if o.shiftsOverlap("B", "C") {
		t.Errorf("Shifts touching at a boundary must not overlap")
	}
	if !o.shiftsOverlap("A", "B") {
		t.Errorf("Expected A and B to overlap")
	}
}
