package reservation

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeWindow = errors.New("window end must be after start")

// TimeWindow is a half-open interval [start, end).
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{start: start, end: end}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// BilledHours rounds the duration up to whole hours; a 2.5h window bills 3.
func (w TimeWindow) BilledHours() int64 {
	d := w.Duration()
	hours := d / time.Hour
	if d%time.Hour > 0 {
		hours++
	}
	return int64(hours)
}

func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func (w TimeWindow) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}
