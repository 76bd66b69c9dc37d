package reservation

import (
	"fmt"
	"time"

	"shearbook/models"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	defaultSlotMinutes = 30
)

// clockToMinutes parses "HH:MM" into minutes from midnight.
func clockToMinutes(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// minutesToClock formats minutes from midnight as "HH:MM".
func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SlotGrid generates the bookable times for a shop on a weekday from
// its declared opening window and slot duration. The last slot starts
// strictly before closing time. Returns nil when the shop is closed
// that day or its hours are malformed.
func SlotGrid(shop *models.Shop, d time.Weekday) []string {
	hours, ok := shop.HoursFor(d)
	if !ok {
		return nil
	}
	open, err := clockToMinutes(hours.Open)
	if err != nil {
		return nil
	}
	closing, err := clockToMinutes(hours.Close)
	if err != nil || closing <= open {
		return nil
	}

	step := shop.SlotMinutes
	if step <= 0 {
		step = defaultSlotMinutes
	}

	var grid []string
	for t := open; t < closing; t += step {
		grid = append(grid, minutesToClock(t))
	}
	return grid
}

// slotStart combines a date and clock string into the slot's start
// instant. Shop times are interpreted as local wall-clock time.
func slotStart(date, clock string) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, time.Local)
}

func containsTime(grid []string, clock string) bool {
	for _, t := range grid {
		if t == clock {
			return true
		}
	}
	return false
}
