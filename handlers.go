package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tidelab/detide/pkg/coops"
	"github.com/tidelab/detide/pkg/noaa"
	"github.com/tidelab/detide/pkg/surge"
	"github.com/tidelab/detide/pkg/tide"
	"github.com/tidelab/detide/pkg/timetricks"
	"github.com/tidelab/detide/pkg/units"
)

const queryTimeFmt = "2006-01-02T15:04"

type server struct {
	coops   *coops.Client
	fetcher *noaa.Fetcher
}

type predictionsResponse struct {
	Station string      `json:"station"`
	Datum   string      `json:"datum"`
	Times   []time.Time `json:"times"`
	Heights []float64   `json:"heights"`
}

type surgeResponse struct {
	Station string    `json:"station"`
	Days    []float64 `json:"days_from_landfall"`
	Surge   []float64 `json:"surge"`
}

func (s *server) servePredictions(w http.ResponseWriter, r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL)
	station := r.URL.Query().Get("station")
	datum := r.URL.Query().Get("datum")
	if datum == "" {
		datum = tide.DefaultDatum
	}
	begin, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	model, err := tide.MakeModel(s.coops, station, datum)
	if err != nil {
		fail(w, err)
		return
	}
	heights, err := tide.Predict(model, begin, end)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, predictionsResponse{
		Station: station,
		Datum:   datum,
		Times:   tide.Datetimes(begin, end),
		Heights: heights,
	})
}

func (s *server) serveSurge(w http.ResponseWriter, r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL)
	station := r.URL.Query().Get("station")
	begin, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	landfall, err := time.Parse(queryTimeFmt, r.URL.Query().Get("landfall"))
	if err != nil {
		http.Error(w, fmt.Sprintf("bad landfall: %v", err), http.StatusBadRequest)
		return
	}

	result, err := surge.Run(s.coops, s.fetcher, station, begin, end, landfall)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, surgeResponse{
		Station: station,
		Days:    result.Days,
		Surge:   result.Surge,
	})
}

// parseWindow reads the begin/end query parameters. Without them the
// window is the current calendar day plus the following one.
func parseWindow(r *http.Request) (begin, end time.Time, err error) {
	q := r.URL.Query()
	if q.Get("begin") == "" && q.Get("end") == "" {
		begin = timetricks.TrimClock(time.Now().UTC())
		return begin, begin.Add(48 * time.Hour), nil
	}
	begin, err = time.Parse(queryTimeFmt, q.Get("begin"))
	if err != nil {
		return begin, end, fmt.Errorf("bad begin: %v", err)
	}
	end, err = time.Parse(queryTimeFmt, q.Get("end"))
	if err != nil {
		return begin, end, fmt.Errorf("bad end: %v", err)
	}
	return begin, end, nil
}

// fail maps validation errors to 400s and everything else to 500s.
func fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	for _, validation := range []error{
		coops.ErrBadStation,
		units.ErrUnknown,
		tide.ErrNonStandardHarcon,
		tide.ErrMissingDatum,
		tide.ErrEmptyRange,
	} {
		if errors.Is(err, validation) {
			code = http.StatusBadRequest
			break
		}
	}
	log.Printf("Failed to get data: %+v", err)
	http.Error(w, fmt.Sprintf("Failed to get data: %+v", err), code)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %+v", err)
	}
}
