package domain

import "time"

// Origin tells where a sample came from.
type Origin string

const (
	OriginSynthetic Origin = "synthetic"
	OriginHardware  Origin = "hardware"
)

// Sample is a single cellular telemetry reading as shown on the monitor screen.
type Sample struct {
	Operator   string    `json:"operator"`
	Technology string    `json:"technology"`
	CellID     string    `json:"cellId"`
	AreaCode   string    `json:"areaCode"`
	MCC        string    `json:"mcc"`
	MNC        string    `json:"mnc"`
	RSSI       int       `json:"rssi"`
	RSRP       int       `json:"rsrp"`
	RSRQ       int       `json:"rsrq"`
	Band       string    `json:"band"`
	Frequency  string    `json:"frequency"`
	CapturedAt time.Time `json:"capturedAt"`
	Origin     Origin    `json:"origin"`
}

// SignalPercent maps RSSI onto the 0..100 fill of the signal bar.
func (s Sample) SignalPercent() int {
	percent := float64(s.RSSI+120) * 1.5
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	default:
		return int(percent)
	}
}

// IsHardware reports whether the sample was pushed by an external source.
func (s Sample) IsHardware() bool {
	return s.Origin == OriginHardware
}
