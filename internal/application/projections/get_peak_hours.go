package projections

import (
	"context"
	"fmt"
)

// PeakHoursStore defines the attendance store interface needed by the peak hour projection.
type PeakHoursStore interface {
	HourlyCounts(ctx context.Context) ([24]int, error)
}

// GetPeakHoursDeps holds dependencies for the peak hour projection.
type GetPeakHoursDeps struct {
	AttendanceStore PeakHoursStore
}

// PeakHoursResult carries the all-time check-in histogram and its busiest hour.
type PeakHoursResult struct {
	Hourly    [24]int `json:"hourly_distribution"`
	PeakHour  int     `json:"peak_hour"`
	PeakCount int     `json:"peak_count"`
	HasData   bool    `json:"has_data"`
	Label     string  `json:"peak_time"`
}

// QueryPeakHours returns the check-in distribution by hour of day over all history.
// PRE: none
// POST: HasData is false and Label is "No data" when nobody has checked in
func QueryPeakHours(ctx context.Context, deps GetPeakHoursDeps) (PeakHoursResult, error) {
	hourly, err := deps.AttendanceStore.HourlyCounts(ctx)
	if err != nil {
		return PeakHoursResult{}, err
	}
	hour, ok := PeakHour(hourly)
	result := PeakHoursResult{Hourly: hourly, HasData: ok, Label: FormatPeakHour(hour, ok)}
	if ok {
		result.PeakHour = hour
		result.PeakCount = hourly[hour]
	}
	return result, nil
}

// PeakHour returns the hour with the most check-ins; the earliest hour wins ties.
// ok is false when every bucket is empty.
func PeakHour(hourly [24]int) (hour int, ok bool) {
	best := 0
	for h, c := range hourly {
		if c > best {
			best, hour = c, h
		}
	}
	return hour, best > 0
}

// FormatPeakHour renders an hour as a one-hour range such as "6:00 PM – 7:00 PM".
func FormatPeakHour(hour int, ok bool) string {
	if !ok {
		return "No data"
	}
	return fmt.Sprintf("%s – %s", clockHour(hour), clockHour((hour+1)%24))
}

func clockHour(h int) string {
	switch {
	case h == 0:
		return "12:00 AM"
	case h < 12:
		return fmt.Sprintf("%d:00 AM", h)
	case h == 12:
		return "12:00 PM"
	default:
		return fmt.Sprintf("%d:00 PM", h-12)
	}
}
