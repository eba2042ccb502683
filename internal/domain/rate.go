package domain

import (
	"maps"
	"time"
)

// DateLayout is the ISO calendar date format used for series keys and query params.
const DateLayout = "2006-01-02"

// RateSeries maps a calendar date to the currency rates quoted on that date.
type RateSeries map[string]map[string]float64

// Clone returns a deep copy so callers can't mutate a cached series.
func (s RateSeries) Clone() RateSeries {
	if s == nil {
		return nil
	}
	out := make(RateSeries, len(s))
	for date, rates := range s {
		out[date] = maps.Clone(rates)
	}
	return out
}

type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Key() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

func (r DateRange) String() string { return r.Key() }

type Origin string

const (
	OriginCache    Origin = "cache"
	OriginRemote   Origin = "remote"
	OriginSnapshot Origin = "snapshot"
)
