// Package coops implements queries to the CO-OPS station metadata API
// for harmonic constituents and datums. Values come back converted to
// the caller's unit system along with the raw payload for display.
package coops

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidelab/detide/pkg/units"
)

// DefaultBaseURL is the production station metadata endpoint.
const DefaultBaseURL = "https://api.tidesandcurrents.noaa.gov/mdapi/prod/webapi/stations"

// ErrBadStation reports a station identifier that is not numeric.
var ErrBadStation = errors.New("station id is not numeric")

// Client fetches station metadata. The zero value is not usable; see
// NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client against the production API.
func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StationID normalizes a station identifier to the decimal string of
// its integer value, rejecting anything non-numeric.
func StationID(station string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(station))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadStation, station)
	}
	return strconv.Itoa(n), nil
}

// FetchHarcon retrieves the harmonic constituent catalog for a station,
// in the service-returned order, with amplitudes converted to the
// requested units. The raw payload is returned alongside.
func (c *Client) FetchHarcon(station string, to units.Unit) ([]HarmonicConstituent, *HarconInfo, error) {
	if !to.Valid() {
		return nil, nil, fmt.Errorf("%w %q", units.ErrUnknown, string(to))
	}
	id, err := StationID(station)
	if err != nil {
		return nil, nil, err
	}

	var info HarconInfo
	if err := c.getJSON(fmt.Sprintf("%s/%s/harcon.json", c.BaseURL, id), &info); err != nil {
		return nil, nil, fmt.Errorf("fetching harcon for station %s: %w", id, err)
	}

	native := units.Unit(info.Units)
	harcon := make([]HarmonicConstituent, len(info.HarmonicConstituents))
	for i, h := range info.HarmonicConstituents {
		amp, err := units.Convert(h.Amplitude, native, to)
		if err != nil {
			return nil, nil, fmt.Errorf("converting amplitude of %s for station %s: %w",
				h.Name, id, err)
		}
		h.Amplitude = amp
		harcon[i] = h
	}
	return harcon, &info, nil
}

// FetchDatums retrieves the datum catalog for a station with values
// converted to the requested units. The raw payload is returned
// alongside.
func (c *Client) FetchDatums(station string, to units.Unit) ([]Datum, *DatumsInfo, error) {
	if !to.Valid() {
		return nil, nil, fmt.Errorf("%w %q", units.ErrUnknown, string(to))
	}
	id, err := StationID(station)
	if err != nil {
		return nil, nil, err
	}

	var info DatumsInfo
	if err := c.getJSON(fmt.Sprintf("%s/%s/datums.json", c.BaseURL, id), &info); err != nil {
		return nil, nil, fmt.Errorf("fetching datums for station %s: %w", id, err)
	}

	native := units.Unit(info.Units)
	datums := make([]Datum, len(info.Datums))
	for i, d := range info.Datums {
		v, err := units.Convert(d.Value, native, to)
		if err != nil {
			return nil, nil, fmt.Errorf("converting datum %s for station %s: %w",
				d.Name, id, err)
		}
		d.Value = v
		datums[i] = d
	}
	return datums, &info, nil
}

func (c *Client) getJSON(addr string, out interface{}) error {
	resp, err := c.HTTPClient.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
