package coops

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tidelab/detide/pkg/units"
)

func fakeAPI(t *testing.T, harcon HarconInfo, datums DatumsInfo) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/9441102/harcon.json", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(harcon); err != nil {
			t.Errorf("encoding harcon: %v", err)
		}
	})
	mux.HandleFunc("/9441102/datums.json", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(datums); err != nil {
			t.Errorf("encoding datums: %v", err)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient()
	c.BaseURL = srv.URL
	return c
}

func TestFetchHarconConvertsUnits(t *testing.T) {
	c := fakeAPI(t, HarconInfo{
		Units: "feet",
		HarmonicConstituents: []HarmonicConstituent{
			{Number: 1, Name: "M2", Amplitude: 1.0, PhaseGMT: 10.5, Speed: 28.9841042},
			{Number: 2, Name: "S2", Amplitude: 2.0, PhaseGMT: 33.1, Speed: 30},
		},
	}, DatumsInfo{})

	harcon, info, err := c.FetchHarcon("9441102", units.Meters)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	want := []HarmonicConstituent{
		{Number: 1, Name: "M2", Amplitude: 0.3048, PhaseGMT: 10.5, Speed: 28.9841042},
		{Number: 2, Name: "S2", Amplitude: 0.6096, PhaseGMT: 33.1, Speed: 30},
	}
	if diff := cmp.Diff(want, harcon); diff != "" {
		t.Errorf("incorrect constituents (-want,+got): %s", diff)
	}

	// The raw payload keeps the native units.
	if info.Units != "feet" {
		t.Errorf("payload units = %q, want feet", info.Units)
	}
	if got := info.HarmonicConstituents[0].Amplitude; got != 1.0 {
		t.Errorf("payload amplitude mutated to %v", got)
	}
}

func TestFetchHarconSameUnits(t *testing.T) {
	c := fakeAPI(t, HarconInfo{
		Units: "meters",
		HarmonicConstituents: []HarmonicConstituent{
			{Number: 1, Name: "M2", Amplitude: 1.25},
		},
	}, DatumsInfo{})

	harcon, _, err := c.FetchHarcon("9441102", units.Meters)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if harcon[0].Amplitude != 1.25 {
		t.Errorf("amplitude = %v, want 1.25 unchanged", harcon[0].Amplitude)
	}
}

func TestFetchDatums(t *testing.T) {
	c := fakeAPI(t, HarconInfo{}, DatumsInfo{
		Units: "feet",
		Datums: []Datum{
			{Name: "MSL", Description: "Mean Sea Level", Value: 5.0},
			{Name: "MTL", Description: "Mean Tide Level", Value: 4.0},
		},
	})

	datums, info, err := c.FetchDatums("9441102", units.Meters)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	want := []Datum{
		{Name: "MSL", Description: "Mean Sea Level", Value: 1.524},
		{Name: "MTL", Description: "Mean Tide Level", Value: 1.2192},
	}
	if diff := cmp.Diff(want, datums); diff != "" {
		t.Errorf("incorrect datums (-want,+got): %s", diff)
	}
	if got := info.Datums[0].Value; got != 5.0 {
		t.Errorf("payload datum mutated to %v", got)
	}
}

func TestFetchRejectsBadStation(t *testing.T) {
	c := fakeAPI(t, HarconInfo{}, DatumsInfo{})

	if _, _, err := c.FetchHarcon("mondo-point", units.Meters); !errors.Is(err, ErrBadStation) {
		t.Errorf("want ErrBadStation, got %v", err)
	}
	if _, _, err := c.FetchDatums("mondo-point", units.Meters); !errors.Is(err, ErrBadStation) {
		t.Errorf("want ErrBadStation, got %v", err)
	}
}

func TestFetchRejectsBadUnits(t *testing.T) {
	c := fakeAPI(t, HarconInfo{}, DatumsInfo{})

	if _, _, err := c.FetchHarcon("9441102", units.Unit("fathoms")); !errors.Is(err, units.ErrUnknown) {
		t.Errorf("want units.ErrUnknown, got %v", err)
	}
}

func TestFetchReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such station", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewClient()
	c.BaseURL = srv.URL
	if _, _, err := c.FetchHarcon("12345", units.Meters); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestStationID(t *testing.T) {
	got, err := StationID(" 9441102 ")
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if got != "9441102" {
		t.Errorf("got %q, want 9441102", got)
	}
}
