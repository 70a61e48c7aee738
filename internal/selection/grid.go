package selection

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// Cell is one grid unit: an instructor column at a time row on the grid date
type Cell struct {
	InstructorID int64
	Date         time.Time
	Time         types.TimeString
}

// Grid describes the rows and columns of one rendered scheduling grid
type Grid struct {
	Date        time.Time
	Instructors []int64
	Times       []types.TimeString
	Granularity int
}

// NewGrid builds a grid for the date with one row per slot of the working hours
func NewGrid(date time.Time, instructors []int64, hours domain.Interval, granularity int) Grid {
	return Grid{
		Date:        truncateDay(date),
		Instructors: append([]int64(nil), instructors...),
		Times:       domain.SlotTimes(hours, granularity),
		Granularity: granularity,
	}
}

// NewGridFromConfig builds a grid using the working hours and step of a schedule config
func NewGridFromConfig(date time.Time, instructors []int64, config *domain.ScheduleConfig) Grid {
	return NewGrid(date, instructors, config.WorkingHours, config.GranularityMinutes)
}

// InstructorIndex returns the column of the instructor
func (g Grid) InstructorIndex(instructorID int64) (int, bool) {
	for i, id := range g.Instructors {
		if id == instructorID {
			return i, true
		}
	}
	return -1, false
}

// TimeIndex returns the row of the time
func (g Grid) TimeIndex(t types.TimeString) (int, bool) {
	for i, v := range g.Times {
		if v == t {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether the cell belongs to this grid
func (g Grid) Contains(c Cell) bool {
	if !sameDay(g.Date, c.Date) {
		return false
	}
	if _, ok := g.InstructorIndex(c.InstructorID); !ok {
		return false
	}
	_, ok := g.TimeIndex(c.Time)
	return ok
}

// CellAt returns the cell at the given column and row
func (g Grid) CellAt(instructorIndex, timeIndex int) (Cell, bool) {
	if instructorIndex < 0 || instructorIndex >= len(g.Instructors) || timeIndex < 0 || timeIndex >= len(g.Times) {
		return Cell{}, false
	}
	return Cell{InstructorID: g.Instructors[instructorIndex], Date: g.Date, Time: g.Times[timeIndex]}, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
