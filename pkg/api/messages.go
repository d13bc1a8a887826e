package api

import "google.golang.org/protobuf/types/known/timestamppb"

// ScreenRequest carries no parameters; the screen is a singleton.
type ScreenRequest struct{}

// Sample is a telemetry reading on the wire.
type Sample struct {
	Operator   string                 `json:"operator,omitempty"`
	Technology string                 `json:"technology,omitempty"`
	CellId     string                 `json:"cellId,omitempty"`
	AreaCode   string                 `json:"areaCode,omitempty"`
	Mcc        string                 `json:"mcc,omitempty"`
	Mnc        string                 `json:"mnc,omitempty"`
	Rssi       int32                  `json:"rssi"`
	Rsrp       int32                  `json:"rsrp"`
	Rsrq       int32                  `json:"rsrq"`
	Band       string                 `json:"band,omitempty"`
	Frequency  string                 `json:"frequency,omitempty"`
	CapturedAt *timestamppb.Timestamp `json:"capturedAt,omitempty"`
	Origin     string                 `json:"origin,omitempty"`
}

// GetCapturedAt returns the capture timestamp.
func (x *Sample) GetCapturedAt() *timestamppb.Timestamp {
	if x == nil {
		return nil
	}
	return x.CapturedAt
}

// ScreenView is what a client renders.
type ScreenView struct {
	Mode          string  `json:"mode"`
	Status        string  `json:"status"`
	Refreshing    bool    `json:"refreshing"`
	HardwareMode  bool    `json:"hardwareMode"`
	Sample        *Sample `json:"sample,omitempty"`
	SignalPercent int32   `json:"signalPercent"`
	Notice        string  `json:"notice,omitempty"`
	Seq           uint64  `json:"seq"`
}

// GetSample returns the visible sample, nil while locked.
func (x *ScreenView) GetSample() *Sample {
	if x == nil {
		return nil
	}
	return x.Sample
}

// ExportResponse holds the text copied to the clipboard.
type ExportResponse struct {
	Text string `json:"text"`
}

// PushTelemetryRequest delivers a sample from a hardware bridge.
type PushTelemetryRequest struct {
	Sample *Sample `json:"sample"`
}

// GetSample returns the pushed sample.
func (x *PushTelemetryRequest) GetSample() *Sample {
	if x == nil {
		return nil
	}
	return x.Sample
}
