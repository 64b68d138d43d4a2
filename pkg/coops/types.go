package coops

// HarmonicConstituent is one named oscillatory component of the tide as
// reported by the station metadata API. Amplitude is in the units the
// caller requested; phases are degrees and Speed is degrees per hour.
type HarmonicConstituent struct {
	Number      int     `json:"number"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amplitude   float64 `json:"amplitude"`
	PhaseGMT    float64 `json:"phase_GMT"`
	PhaseLocal  float64 `json:"phase_local"`
	Speed       float64 `json:"speed"`
}

// Datum is a named vertical reference value for a station, e.g. MSL or
// MTL.
type Datum struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// HarconInfo is the raw harcon.json payload. The constituent list it
// carries is in the service's native units; FetchHarcon returns a
// converted copy separately.
type HarconInfo struct {
	Units                string                `json:"units"`
	HarmonicConstituents []HarmonicConstituent `json:"HarmonicConstituents"`
}

// DatumsInfo is the raw datums.json payload, kept for callers that want
// station metadata beyond the datum list itself.
type DatumsInfo struct {
	Accepted         string  `json:"accepted"`
	Superseded       string  `json:"superseded"`
	Epoch            string  `json:"epoch"`
	Units            string  `json:"units"`
	OrthometricDatum string  `json:"OrthometricDatum"`
	DatumAnalysis    string  `json:"DatumAnalysisPeriod"`
	CtrlStation      string  `json:"ctrlStation"`
	Datums           []Datum `json:"datums"`
}
