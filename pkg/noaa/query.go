package noaa

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/tidelab/detide/pkg/cache"
	"github.com/tidelab/detide/pkg/metrics"
)

const (
	// DefaultAPIURL is the production data retrieval endpoint.
	DefaultAPIURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"

	// application identifies this client to the service.
	application = "detide"

	queryTimeFmt = "20060102 15:04"
	cacheTimeFmt = "200601021504"
	csvTimeFmt   = "2006-01-02 15:04"
)

// Fetcher retrieves series with a transparent disk cache. Every field
// is set by NewFetcher; APIURL and HTTPClient may be overridden before
// first use.
type Fetcher struct {
	APIURL     string
	HTTPClient *http.Client
	Cache      *cache.Disk
}

// NewFetcher returns a Fetcher against the production API backed by the
// given cache.
func NewFetcher(c *cache.Disk) *Fetcher {
	return &Fetcher{
		APIURL: DefaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Cache: c,
	}
}

func (q *SeriesQuery) build(p Product) url.Values {
	vals := make(url.Values)
	vals.Add("product", string(p))
	vals.Add("application", application)
	vals.Add("format", "csv")
	vals.Add("station", q.Station)
	vals.Add("begin_date", q.Begin.Format(queryTimeFmt))
	vals.Add("end_date", q.End.Format(queryTimeFmt))
	vals.Add("time_zone", q.TimeZone)
	vals.Add("datum", q.Datum)
	vals.Add("units", q.Units)
	return vals
}

// CacheKey derives the deterministic cache location for one product of
// this query.
func (q *SeriesQuery) CacheKey(p Product) string {
	dates := q.Begin.Format(cacheTimeFmt) + "_" + q.End.Format(cacheTimeFmt)
	file := fmt.Sprintf("%s_%s_%s", q.TimeZone, q.Datum, q.Units)
	return path.Join(string(p), q.Station, dates, file)
}

// FetchSeries returns the series for one product, consulting the cache
// first. On a miss the raw response body is written to the cache before
// parsing, so later identical requests stay off the network.
func (f *Fetcher) FetchSeries(q *SeriesQuery, p Product) (*Series, error) {
	key := q.CacheKey(p)
	if body, ok := f.Cache.Get(key); ok {
		metrics.ObserveCacheLookup(string(p), "hit")
		log.Printf("Using cached %s data for station %s", p, q.Station)
		return parseSeries(p, body)
	}
	metrics.ObserveCacheLookup(string(p), "miss")

	log.Printf("Fetching %s data from NOAA for station %s", p, q.Station)
	body, err := f.fetch(q, p)
	if err != nil {
		metrics.CountFetchError(string(p))
		return nil, err
	}
	if err := f.Cache.Put(key, body); err != nil {
		return nil, fmt.Errorf("caching %s response: %w", p, err)
	}
	return parseSeries(p, body)
}

// FetchTideData retrieves both products for one query. A failure of
// either product is logged and that product's values degrade to nil so
// the caller can proceed with the other. When both succeed, their time
// grids must be identical.
func (f *Fetcher) FetchTideData(q *SeriesQuery) (times []time.Time, waterLevel, predictions []float64, err error) {
	wl, wlErr := f.FetchSeries(q, WaterLevel)
	if wlErr != nil {
		log.Printf("Fetching water_level failed, returning nil: %v", wlErr)
		wl = nil
	}
	pred, predErr := f.FetchSeries(q, Predictions)
	if predErr != nil {
		log.Printf("Fetching predictions failed, returning nil: %v", predErr)
		pred = nil
	}

	if wl != nil && pred != nil && !sameTimes(wl.Times, pred.Times) {
		return nil, nil, nil, fmt.Errorf("%w: station %s", ErrGridMismatch, q.Station)
	}

	if wl != nil {
		times = wl.Times
		waterLevel = wl.Values
	}
	if pred != nil {
		if times == nil {
			times = pred.Times
		}
		predictions = pred.Values
	}
	return times, waterLevel, predictions, nil
}

// fetch issues the network request and validates the response shape.
func (f *Fetcher) fetch(q *SeriesQuery, p Product) ([]byte, error) {
	addr, err := url.Parse(f.APIURL)
	if err != nil {
		return nil, err
	}
	addr.RawQuery = q.build(p).Encode()

	resp, err := f.HTTPClient.Get(addr.String())
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", p, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", p, err)
	}

	// A response that does not open with the product's header, or that
	// mentions an error anywhere, is an error message body.
	text := string(body)
	header, _, _ := strings.Cut(text, "\n")
	if strings.TrimSpace(header) != expectedHeaders[p] || strings.Contains(text, "Error") {
		return nil, fmt.Errorf("%s service error: %s", p, strings.TrimSpace(text))
	}
	return body, nil
}

// parseSeries reads the cached response shape: one header line, then
// CSV rows whose first column is a minute timestamp and second column
// is the value. Blank values become NaN.
func parseSeries(p Product, body []byte) (*Series, error) {
	s := &Series{Product: p}
	scanner := bufio.NewScanner(bytes.NewReader(body))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, ",", 3)
		stamp, err := time.ParseInLocation(csvTimeFmt, strings.TrimSpace(fields[0]), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing %s timestamp: %w", p, err)
		}
		if n := len(s.Times); n > 0 && stamp.Before(s.Times[n-1]) {
			return nil, fmt.Errorf("%s timestamps decrease at %s", p, stamp)
		}

		value := math.NaN()
		if len(fields) > 1 {
			if raw := strings.TrimSpace(fields[1]); raw != "" {
				value, err = strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("parsing %s value at %s: %w", p, stamp, err)
				}
			}
		}

		s.Times = append(s.Times, stamp)
		s.Values = append(s.Values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s response: %w", p, err)
	}
	return s, nil
}

func sameTimes(a, b []time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
