// Package selection turns pointer gestures over a scheduling grid into a
// canonical booking candidate for one instructor on one date.
//
// A Controller belongs to exactly one grid and is driven from a single event loop;
// it performs no I/O except calling the handoff on Confirm.
package selection

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

var (
	ErrNothingToConfirm = errors.New("selection: nothing to confirm")
	ErrHandoff          = errors.New("selection: handoff failed")
)

// State of the gesture state machine
type State int

const (
	Idle State = iota
	Selecting
	PendingConfirmation
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case PendingConfirmation:
		return "pending_confirmation"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// BookingCandidate is the canonical result of a finished selection.
// Start and End are the times of the earlier and the later selected cell,
// SlotEnd is the bottom edge of the later cell.
type BookingCandidate struct {
	InstructorID int64
	Date         time.Time
	Start        types.TimeString
	End          types.TimeString
	SlotEnd      types.TimeString
}

// Handoff receives confirmed candidates, typically the booking-detail form
type Handoff interface {
	Handoff(candidate BookingCandidate) error
}

// HandoffFunc adapts a function to Handoff
type HandoffFunc func(candidate BookingCandidate) error

func (f HandoffFunc) Handoff(candidate BookingCandidate) error {
	return f(candidate)
}

// Controller is the selection state machine of one grid
type Controller struct {
	grid     Grid
	layout   Layout
	occupied Occupancy
	handoff  Handoff

	selectionMode bool
	state         State

	anchor    Cell
	current   Cell
	rect      Rect
	candidate BookingCandidate
}

// NewController creates a controller in Idle with selection mode off.
// A nil occupancy treats every cell as free.
func NewController(grid Grid, layout Layout, occupied Occupancy, handoff Handoff) *Controller {
	if occupied == nil {
		occupied = AllFree
	}
	return &Controller{
		grid:     grid,
		layout:   layout,
		occupied: occupied,
		handoff:  handoff,
	}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// SelectionMode reports whether presses start a selection
func (c *Controller) SelectionMode() bool {
	return c.selectionMode
}

// SetSelectionMode toggles selection mode; turning it off drops any selection
func (c *Controller) SetSelectionMode(enabled bool) {
	c.selectionMode = enabled
	if !enabled {
		c.reset()
	}
}

// SetOccupancy replaces the predicate after availability was reloaded
func (c *Controller) SetOccupancy(occupied Occupancy) {
	if occupied == nil {
		occupied = AllFree
	}
	c.occupied = occupied
}

// Press starts a selection on a free cell. Reports whether the state changed.
func (c *Controller) Press(cell Cell) bool {
	if !c.selectionMode || c.state != Idle {
		return false
	}
	if !c.grid.Contains(cell) || c.occupied(cell) {
		return false
	}

	c.state = Selecting
	c.anchor = cell
	c.current = cell
	c.rect = c.rectFor(cell, cell)
	return true
}

// Move extends the selection to the cell. Moves to another instructor or date,
// and moves whose span would cover an occupied cell, are ignored.
func (c *Controller) Move(cell Cell) bool {
	if c.state != Selecting {
		return false
	}
	if cell.InstructorID != c.anchor.InstructorID || !sameDay(cell.Date, c.anchor.Date) {
		return false
	}
	if !c.grid.Contains(cell) || !c.spanFree(c.anchor, cell) {
		return false
	}

	c.current = cell
	c.rect = c.rectFor(c.anchor, cell)
	return true
}

// Release finishes the drag and waits for confirmation. No-op unless Selecting.
func (c *Controller) Release() bool {
	if c.state != Selecting {
		return false
	}

	start, end := c.anchor.Time, c.current.Time
	if end.IsBefore(start) {
		start, end = end, start
	}

	slotEnd, err := end.AddMinutes(c.grid.Granularity)
	if err != nil {
		slotEnd = end
	}

	c.candidate = BookingCandidate{
		InstructorID: c.anchor.InstructorID,
		Date:         c.anchor.Date,
		Start:        start,
		End:          end,
		SlotEnd:      slotEnd,
	}
	c.state = PendingConfirmation
	return true
}

// Leave handles the pointer leaving the grid, same as Release
func (c *Controller) Leave() bool {
	return c.Release()
}

// Cancel drops the selection in any state
func (c *Controller) Cancel() {
	c.reset()
}

// Confirm hands the candidate off. On handoff failure the selection is kept
// so the user can retry without selecting again.
func (c *Controller) Confirm() error {
	if c.state != PendingConfirmation {
		return ErrNothingToConfirm
	}
	if c.handoff != nil {
		if err := c.handoff.Handoff(c.candidate); err != nil {
			return fmt.Errorf("%w: %v", ErrHandoff, err)
		}
	}
	c.reset()
	return nil
}

// Rectangle returns the highlighted area while a selection exists
func (c *Controller) Rectangle() (Rect, bool) {
	if c.state == Idle {
		return Rect{}, false
	}
	return c.rect, true
}

// Candidate returns the canonical interval while waiting for confirmation
func (c *Controller) Candidate() (BookingCandidate, bool) {
	if c.state != PendingConfirmation {
		return BookingCandidate{}, false
	}
	return c.candidate, true
}

func (c *Controller) reset() {
	c.state = Idle
	c.anchor = Cell{}
	c.current = Cell{}
	c.rect = Rect{}
	c.candidate = BookingCandidate{}
}

// spanFree checks every cell between from and to of the same column
func (c *Controller) spanFree(from, to Cell) bool {
	col, _ := c.grid.InstructorIndex(from.InstructorID)
	lo, _ := c.grid.TimeIndex(from.Time)
	hi, _ := c.grid.TimeIndex(to.Time)
	if hi < lo {
		lo, hi = hi, lo
	}
	for row := lo; row <= hi; row++ {
		cell, ok := c.grid.CellAt(col, row)
		if !ok || c.occupied(cell) {
			return false
		}
	}
	return true
}

func (c *Controller) rectFor(from, to Cell) Rect {
	col, _ := c.grid.InstructorIndex(from.InstructorID)
	fromRow, _ := c.grid.TimeIndex(from.Time)
	toRow, _ := c.grid.TimeIndex(to.Time)
	return RectFor(c.layout, col, fromRow, toRow)
}
