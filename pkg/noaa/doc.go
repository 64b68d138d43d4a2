// Package noaa retrieves observed water level and tide prediction time
// series from the CO-OPS data retrieval API. Series are requested as
// CSV per station and time window (see SeriesQuery) and cached verbatim
// on disk, so repeating a request never reaches the network. A
// successful retrieval yields minute-stamped heights; gaps in the
// record come back as NaN.
package noaa
