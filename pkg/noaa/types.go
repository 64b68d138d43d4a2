package noaa

import (
	"errors"
	"time"
)

// Product selects one time series column from the data retrieval API.
type Product string

const (
	// WaterLevel is the observed (preliminary or verified) water level.
	WaterLevel Product = "water_level"
	// Predictions is the service's own astronomical tide prediction.
	Predictions Product = "predictions"
)

// expectedHeaders holds the exact CSV header the service sends per
// product. Anything else means the body is an error message.
var expectedHeaders = map[Product]string{
	WaterLevel:  "Date Time, Water Level, Sigma, O or I (for verified), F, R, L, Quality",
	Predictions: "Date Time, Prediction",
}

// ErrGridMismatch reports that the water level and prediction series
// for one request do not share a timestamp grid.
var ErrGridMismatch = errors.New("water level and prediction times differ")

// Series is one retrieved column of timestamped values. Values are
// index aligned with Times; a missing observation is NaN.
type Series struct {
	Product Product
	Times   []time.Time
	Values  []float64
}

// SeriesQuery describes one retrieval: a station, a closed time window,
// and the datum/zone/unit parameters that shape the values.
type SeriesQuery struct {
	Station  string
	Begin    time.Time
	End      time.Time
	Datum    string
	TimeZone string
	Units    string
}
