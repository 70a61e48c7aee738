package selection

import (
	"sort"

	"github.com/m04kA/DS-SchedulingService/internal/usecase/compute_availability"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// Occupancy reports whether a cell is taken
type Occupancy func(c Cell) bool

// AllFree treats every cell as free
func AllFree(Cell) bool { return false }

// OccupancyFromAvailability builds the predicate from a calculator response.
// A cell is free iff its instructor is listed free for one grid step at that time.
// When the step itself was not computed the shortest longer duration is used;
// rows missing from the response are occupied for everyone.
// The full grid is read when present, so rows hidden by the reference duration stay selectable.
func OccupancyFromAvailability(resp *compute_availability.Response) Occupancy {
	if resp == nil {
		return func(Cell) bool { return true }
	}

	rows := resp.Grid
	if len(rows) == 0 {
		rows = resp.Slots
	}

	duration, ok := cellDuration(resp.Durations, resp.Granularity)
	free := make(map[types.TimeString]map[int64]struct{}, len(rows))
	if ok {
		for _, slot := range rows {
			ids := make(map[int64]struct{}, len(slot.FreeFor(duration)))
			for _, id := range slot.FreeFor(duration) {
				ids[id] = struct{}{}
			}
			free[slot.Time] = ids
		}
	}

	date := resp.Date
	return func(c Cell) bool {
		if !sameDay(date, c.Date) {
			return true
		}
		_, isFree := free[c.Time][c.InstructorID]
		return !isFree
	}
}

// cellDuration picks the duration that proves a single cell is free
func cellDuration(durations []int, granularity int) (int, bool) {
	sorted := append([]int(nil), durations...)
	sort.Ints(sorted)
	for _, d := range sorted {
		if d >= granularity {
			return d, true
		}
	}
	return 0, false
}
