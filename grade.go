package drill

import "strings"

// Result is the outcome of one grading pass.
type Result struct {
	// Statuses holds one status per field, keyed by field ID.
	Statuses map[string]Status `json:"statuses"`
	// Solved is true when the sheet has at least one unknown field and every
	// unknown field is filled and correct in all of its equations.
	Solved bool `json:"solved"`
}

// Grade assembles and checks every equation a set of fields composes, then
// derives a status per field. Grading is a pure function of the snapshot:
// calling it again with the same fields yields the same result, and it never
// mutates its input.
func Grade(fields []Field) Result {
	correct := make([]int, len(fields))
	total := make([]int, len(fields))
	for _, g := range buildGroups(fields) {
		var b strings.Builder
		for _, c := range g.cells {
			b.WriteString(normalizeGlyphs(fields[c.field].content()))
		}
		eq := b.String()
		if !strings.Contains(eq, "=") {
			// Not an evaluable equation; contributes nothing.
			continue
		}
		// A field occupying several cells of the same equation is still one
		// member of it.
		seen := make(map[int]bool)
		var unknowns []int
		hasEmpty := false
		for _, c := range g.cells {
			i := c.field
			if !fields[i].Unknown || seen[i] {
				continue
			}
			seen[i] = true
			unknowns = append(unknowns, i)
			if strings.TrimSpace(fields[i].Text) == "" {
				hasEmpty = true
			}
		}
		for _, i := range unknowns {
			total[i]++
		}
		if !hasEmpty && CheckEquation(eq) {
			for _, i := range unknowns {
				correct[i]++
			}
		}
	}

	statuses := make(map[string]Status, len(fields))
	anyUnknown := false
	solved := true
	for i, f := range fields {
		if !f.Unknown {
			statuses[f.ID] = StatusNone
			continue
		}
		anyUnknown = true
		empty := strings.TrimSpace(f.Text) == ""
		switch {
		case empty:
			statuses[f.ID] = StatusEmpty
		case total[i] == 0:
			statuses[f.ID] = StatusNone
		case correct[i] == total[i]:
			statuses[f.ID] = StatusCorrect
		case correct[i] == 0:
			statuses[f.ID] = StatusWrong
		default:
			statuses[f.ID] = StatusPartial
		}
		if empty || correct[i] != total[i] {
			solved = false
		}
	}
	if !anyUnknown {
		solved = false
	}
	return Result{Statuses: statuses, Solved: solved}
}
