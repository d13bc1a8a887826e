package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"netmonitor/internal/domain"
)

func TestSignalPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rssi int
		want int
	}{
		{name: "strong", rssi: -50, want: 100},
		{name: "upper synthetic bound", rssi: -70, want: 75},
		{name: "lower synthetic bound", rssi: -100, want: 30},
		{name: "odd value truncates", rssi: -85, want: 52},
		{name: "no signal", rssi: -130, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, domain.Sample{RSSI: tc.rssi}.SignalPercent())
		})
	}
}

func TestIsHardware(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.Sample{Origin: domain.OriginHardware}.IsHardware())
	assert.False(t, domain.Sample{Origin: domain.OriginSynthetic}.IsHardware())
	assert.False(t, domain.Sample{}.IsHardware())
}
