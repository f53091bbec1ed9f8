package kernel

import (
	"fmt"
	"time"

	"tourops/internal/pkg/errs"
	"tourops/internal/pkg/guard"
)

// ErrDateWindowIsNotConstructed is returned when validating a zero-value DateWindow.
var ErrDateWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"DateWindow must be created via NewDateWindow, DayWindow, WeekWindow, or MonthWindow",
)

// DateWindow is a half-open time interval [From, To) over which agency
// settlement balances are aggregated. Convenience constructors build the
// standard reporting periods (day, ISO week, calendar month); NewDateWindow
// builds an arbitrary custom period.
//
// The interval is half-open so adjacent windows never double-count a
// reservation created exactly on a boundary.
type DateWindow struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewDateWindow creates a custom settlement window covering [from, to).
// Returns an error if to does not lie strictly after from.
func NewDateWindow(from, to time.Time) (DateWindow, error) {
	if !to.After(from) {
		return DateWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"dateWindow",
			fmt.Errorf("window end %s is not after start %s", to.Format(time.RFC3339), from.Format(time.RFC3339)),
		)
	}

	return DateWindow{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

// DayWindow returns the window covering the calendar day containing t,
// in t's location.
func DayWindow(t time.Time) DateWindow {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	w, _ := NewDateWindow(from, from.AddDate(0, 0, 1))
	return w
}

// WeekWindow returns the window covering the ISO week (Monday through Sunday)
// containing t, in t's location.
func WeekWindow(t time.Time) DateWindow {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	from := day.AddDate(0, 0, -offset)
	w, _ := NewDateWindow(from, from.AddDate(0, 0, 7))
	return w
}

// MonthWindow returns the window covering the calendar month containing t,
// in t's location.
func MonthWindow(t time.Time) DateWindow {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	w, _ := NewDateWindow(from, from.AddDate(0, 1, 0))
	return w
}

// From returns the inclusive start of the window.
func (w DateWindow) From() time.Time {
	return w.from
}

// To returns the exclusive end of the window.
func (w DateWindow) To() time.Time {
	return w.to
}

// Contains reports whether t falls inside the window.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.from) && t.Before(w.to)
}

// Validate ensures the window was created through a constructor.
func (w DateWindow) Validate() error {
	return w.guard.Validate(ErrDateWindowIsNotConstructed)
}
