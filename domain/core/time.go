package core

import (
	"strconv"
	"time"
)

// Year represents a calendar year used to index annual series
type Year int

// YearOf returns the calendar year a reading falls in
func YearOf(t time.Time) Year {
	return Year(t.Year())
}

// WaterYearOf returns the USGS water year of a reading.
// The water year runs October 1 through September 30 and is named
// for the calendar year it ends in, so October-December readings
// belong to the following year.
func WaterYearOf(t time.Time) Year {
	y := Year(t.Year())
	if t.Month() >= time.October {
		return y + 1
	}
	return y
}

// Minus shifts a year back by a lag offset
func (y Year) Minus(lag int) Year {
	return y - Year(lag)
}

// String returns the four-digit representation
func (y Year) String() string {
	return strconv.Itoa(int(y))
}
