package drill

import (
	"sort"
	"strings"
)

// cell is one slot of a rendered equation, owned by a field.
type cell struct {
	id    string
	field int // index into the graded field slice
}

// group is the ordered run of cells sharing one equation key.
type group struct {
	key   string
	cells []cell
}

// cellKey derives the equation key of a cell id: the id's digits when it has
// any, otherwise its first character. "1c" and "1a" both key to "1".
func cellKey(id string) string {
	var b strings.Builder
	for i := 0; i < len(id); i++ {
		if '0' <= id[i] && id[i] <= '9' {
			b.WriteByte(id[i])
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	for _, r := range id {
		return string(r)
	}
	return ""
}

// buildGroups maps every cell id to its owning field and collects cells into
// equation groups. A tag claimed twice goes to the later field. Cells within
// a group are ordered by id, which is the left-to-right render order; groups
// are ordered by natural key comparison so equation 2 precedes equation 10.
func buildGroups(fields []Field) []group {
	owner := make(map[string]int)
	var ids []string
	for i, f := range fields {
		for _, id := range strings.Fields(f.EquationTags) {
			if _, ok := owner[id]; !ok {
				ids = append(ids, id)
			}
			owner[id] = i
		}
	}
	byKey := make(map[string][]cell)
	var keys []string
	for _, id := range ids {
		k := cellKey(id)
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], cell{id: id, field: owner[id]})
	}
	sort.Slice(keys, func(i, j int) bool { return naturalLess(keys[i], keys[j]) })
	groups := make([]group, 0, len(keys))
	for _, k := range keys {
		cells := byKey[k]
		sort.Slice(cells, func(i, j int) bool { return cells[i].id < cells[j].id })
		groups = append(groups, group{key: k, cells: cells})
	}
	return groups
}

// naturalLess compares strings with runs of digits ordered by value, so "2"
// sorts before "10" and "a2" before "a10".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			da, ra := digitRun(a)
			db, rb := digitRun(b)
			if c := compareRuns(da, db); c != 0 {
				return c < 0
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// digitRun splits off the leading run of digits.
func digitRun(s string) (run, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareRuns orders two digit runs by value without parsing them, so keys
// longer than an int64 still sort sanely.
func compareRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
