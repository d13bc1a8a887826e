package screen

import (
	"encoding/json"
	"fmt"

	"netmonitor/internal/domain"
)

// FormatExport renders a sample as the indented JSON copied to the clipboard.
func FormatExport(sample domain.Sample) (string, error) {
	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sample: %w", err)
	}
	return string(data), nil
}
