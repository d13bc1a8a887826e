package httpapi

import (
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"netmonitor/internal/domain"
)

// decodeSample reads a telemetry payload leniently. Fields that are present
// are taken as they are, missing ones stay zero. Hardware bridges in the
// field also send "cid" and "lac" for the cell and area identifiers. The
// capture time is stamped on arrival, so any sent value is ignored.
func decodeSample(body io.Reader) (domain.Sample, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if !gjson.ValidBytes(raw) {
		return domain.Sample{}, fmt.Errorf("%w: malformed json", domain.ErrInvalidPayload)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return domain.Sample{}, fmt.Errorf("%w: expected an object", domain.ErrInvalidPayload)
	}

	return domain.Sample{
		Operator:   doc.Get("operator").String(),
		Technology: doc.Get("technology").String(),
		CellID:     firstString(doc, "cellId", "cid"),
		AreaCode:   firstString(doc, "areaCode", "lac"),
		MCC:        doc.Get("mcc").String(),
		MNC:        doc.Get("mnc").String(),
		RSSI:       int(doc.Get("rssi").Int()),
		RSRP:       int(doc.Get("rsrp").Int()),
		RSRQ:       int(doc.Get("rsrq").Int()),
		Band:       doc.Get("band").String(),
		Frequency:  doc.Get("frequency").String(),
	}, nil
}

func firstString(doc gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := doc.Get(key); v.Exists() {
			return v.String()
		}
	}
	return ""
}
