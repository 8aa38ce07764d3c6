package domain

import (
	"fmt"
	"time"
)

// TimeWindow is one of the fourteen discrete lookback durations a view can
// be scoped to, from 30 minutes up to 2 years.
type TimeWindow string

const (
	Window30m TimeWindow = "30m"
	Window1h  TimeWindow = "1h"
	Window3h  TimeWindow = "3h"
	Window6h  TimeWindow = "6h"
	Window12h TimeWindow = "12h"
	Window24h TimeWindow = "24h"
	Window3d  TimeWindow = "3d"
	Window7d  TimeWindow = "7d"
	Window14d TimeWindow = "14d"
	Window30d TimeWindow = "30d"
	Window90d TimeWindow = "90d"
	Window180 TimeWindow = "180d"
	Window1y  TimeWindow = "1y"
	Window2y  TimeWindow = "2y"
)

const day = 24 * time.Hour

// windowDurations maps each window to its lookback span.
var windowDurations = map[TimeWindow]time.Duration{
	Window30m: 30 * time.Minute,
	Window1h:  time.Hour,
	Window3h:  3 * time.Hour,
	Window6h:  6 * time.Hour,
	Window12h: 12 * time.Hour,
	Window24h: 24 * time.Hour,
	Window3d:  3 * day,
	Window7d:  7 * day,
	Window14d: 14 * day,
	Window30d: 30 * day,
	Window90d: 90 * day,
	Window180: 180 * day,
	Window1y:  365 * day,
	Window2y:  730 * day,
}

// windowBucketSizes maps each window to its chart bucket width. Sizes are
// chosen so any window yields on the order of tens of buckets.
var windowBucketSizes = map[TimeWindow]time.Duration{
	Window30m: 5 * time.Minute,
	Window1h:  5 * time.Minute,
	Window3h:  15 * time.Minute,
	Window6h:  30 * time.Minute,
	Window12h: time.Hour,
	Window24h: time.Hour,
	Window3d:  3 * time.Hour,
	Window7d:  6 * time.Hour,
	Window14d: 12 * time.Hour,
	Window30d: day,
	Window90d: 3 * day,
	Window180: 7 * day,
	Window1y:  14 * day,
	Window2y:  30 * day,
}

// Duration returns the lookback span of the window.
func (w TimeWindow) Duration() time.Duration {
	return windowDurations[w]
}

// BucketSize returns the chart bucket width used for the window.
func (w TimeWindow) BucketSize() time.Duration {
	return windowBucketSizes[w]
}

// Valid reports whether w is one of the fourteen defined windows.
func (w TimeWindow) Valid() bool {
	_, ok := windowDurations[w]
	return ok
}

// ParseTimeWindow converts a raw string to a TimeWindow, returning an error
// for unknown values.
func ParseTimeWindow(s string) (TimeWindow, error) {
	w := TimeWindow(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown time window %q", s)
	}
	return w, nil
}
