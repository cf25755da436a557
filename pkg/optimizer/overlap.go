package optimizer

// shiftsOverlap reports whether two same-date shifts intersect in time.
// The test is open-interval: a shift ending exactly when the other starts
// does not overlap it.
func (o *Optimizer) shiftsOverlap(shiftID1, shiftID2 string) bool {
	a, b := o.info[shiftID1], o.info[shiftID2]
	return !(a.endMin <= b.startMin || b.endMin <= a.startMin)
}

// overlapGroups partitions the given same-date shifts into groups of 2+
// pairwise-overlapping shifts: each shift is grouped with every later shift
// (in input order) whose window intersects its own. Groups may share
// members; the consumer emits at-most-one constraints per group, so the
// redundancy only repeats a constraint, never weakens one.
func (o *Optimizer) overlapGroups(shiftIDs []string) [][]string {
	var groups [][]string
	for i, shiftID1 := range shiftIDs {
		group := []string{shiftID1}
		for _, shiftID2 := range shiftIDs[i+1:] {
			if o.shiftsOverlap(shiftID1, shiftID2) {
				group = append(group, shiftID2)
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}
