package table

import "sort"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState holds the active client-side sort. It is never persisted.
type SortState struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// Toggle returns the state after clicking the header of key: the same
// column flips direction, a different column starts ascending.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key && s.Direction == SortAsc {
		return SortState{Key: key, Direction: SortDesc}
	}
	return SortState{Key: key, Direction: SortAsc}
}

// SortRows returns a sorted copy of rows ordered by the given column.
// Equal values keep their input order.
func SortRows(rows []Row, key string, dir SortDirection) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		c := out[i].Get(key).Compare(out[j].Get(key))
		if dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}
