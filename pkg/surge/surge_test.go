package surge

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tidelab/detide/pkg/cache"
	"github.com/tidelab/detide/pkg/coops"
	"github.com/tidelab/detide/pkg/harmonics"
	"github.com/tidelab/detide/pkg/noaa"
)

func TestDetide(t *testing.T) {
	got, err := Detide([]float64{1.0, 1.2, 0.9}, []float64{0.3, 0.3, 0.4})
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	want := []float64{0.7, 0.9, 0.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incorrect surge (-want,+got): %s", diff)
	}
}

func TestDetideLengthMismatch(t *testing.T) {
	if _, err := Detide([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want ErrLengthMismatch, got %v", err)
	}
}

// fakeStation serves a flat-tide station: every astronomical amplitude
// is zero, so the prediction is exactly the MSL-MTL offset of 0.3 m.
func fakeStation(t *testing.T) *coops.Client {
	t.Helper()
	harcon := coops.HarconInfo{Units: "meters"}
	for _, c := range harmonics.Standard {
		harcon.HarmonicConstituents = append(harcon.HarmonicConstituents, coops.HarmonicConstituent{
			Number: c.Number,
			Name:   c.Name,
			Speed:  c.Speed,
		})
	}
	datums := coops.DatumsInfo{
		Units: "meters",
		Datums: []coops.Datum{
			{Name: "MSL", Value: 1.5},
			{Name: "MTL", Value: 1.2},
		},
	}

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

	c := coops.NewClient()
	c.BaseURL = srv.URL
	return c
}

// fakeDatagetter serves a 6 minute grid from begin to end with constant
// observed and predicted values.
func fakeDatagetter(t *testing.T, begin, end time.Time) *noaa.Fetcher {
	t.Helper()
	var wl, pred strings.Builder
	wl.WriteString("Date Time, Water Level, Sigma, O or I (for verified), F, R, L, Quality\n")
	pred.WriteString("Date Time, Prediction\n")
	for ts := begin; !ts.After(end); ts = ts.Add(6 * time.Minute) {
		stamp := ts.Format("2006-01-02 15:04")
		fmt.Fprintf(&wl, "%s,1.000,0.003,0,0,0,0,v\n", stamp)
		fmt.Fprintf(&pred, "%s,0.300\n", stamp)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch noaa.Product(r.URL.Query().Get("product")) {
		case noaa.WaterLevel:
			fmt.Fprint(w, wl.String())
		case noaa.Predictions:
			fmt.Fprint(w, pred.String())
		}
	}))
	t.Cleanup(srv.Close)

	disk, err := cache.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %+v", err)
	}
	f := noaa.NewFetcher(disk)
	f.APIURL = srv.URL
	return f
}

func TestRun(t *testing.T) {
	begin := time.Date(2015, time.December, 21, 0, 0, 0, 0, time.UTC)
	end := begin.Add(30 * time.Minute)
	landfall := begin.Add(12 * time.Hour)

	c := fakeStation(t)
	f := fakeDatagetter(t, begin, end)

	got, err := Run(c, f, "9441102", begin, end, landfall)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if len(got.Days) != 6 || len(got.Surge) != 6 {
		t.Fatalf("got %d days, %d surge values, want 6 each", len(got.Days), len(got.Surge))
	}
	for i, s := range got.Surge {
		if math.Abs(s-0.7) > 1e-9 {
			t.Errorf("surge[%d] = %v, want 0.7", i, s)
		}
	}
	if math.Abs(got.Days[0]-(-0.5)) > 1e-12 {
		t.Errorf("days[0] = %v, want -0.5", got.Days[0])
	}
	step := 6.0 / 60.0 / 24.0
	for i := 1; i < len(got.Days); i++ {
		if math.Abs(got.Days[i]-got.Days[i-1]-step) > 1e-12 {
			t.Errorf("days[%d]-days[%d] = %v, want %v", i, i-1, got.Days[i]-got.Days[i-1], step)
		}
	}
}

func TestRunWithoutObservations(t *testing.T) {
	begin := time.Date(2015, time.December, 21, 0, 0, 0, 0, time.UTC)
	end := begin.Add(30 * time.Minute)

	c := fakeStation(t)

	// A datagetter with no water level record degrades that product,
	// which Run cannot proceed without.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, " Error: No data was found.\n")
	}))
	t.Cleanup(srv.Close)
	disk, err := cache.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %+v", err)
	}
	f := noaa.NewFetcher(disk)
	f.APIURL = srv.URL

	if _, err := Run(c, f, "9441102", begin, end, begin); err == nil {
		t.Error("expected error when no observed water level exists")
	}
}
