package generator_test

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmonitor/internal/domain"
	"netmonitor/internal/generator"
)

type sequence struct {
	values []float64
	next   int
}

func (s *sequence) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestGenerateWithinRanges(t *testing.T) {
	t.Parallel()

	src := generator.NewRandomSource(generator.Config{Rand: rand.New(rand.NewSource(1))})

	for i := 0; i < 2000; i++ {
		sample := src.Generate()

		require.GreaterOrEqual(t, sample.RSSI, -100)
		require.LessOrEqual(t, sample.RSSI, -70)
		require.GreaterOrEqual(t, sample.RSRP, -110)
		require.LessOrEqual(t, sample.RSRP, -90)
		require.GreaterOrEqual(t, sample.RSRQ, -20)
		require.LessOrEqual(t, sample.RSRQ, -10)

		require.Equal(t, generator.DefaultMCC, sample.MCC)
		require.Equal(t, generator.DefaultMNC, sample.MNC)
		require.Equal(t, domain.OriginSynthetic, sample.Origin)

		cellID, err := strconv.Atoi(sample.CellID)
		require.NoError(t, err)
		require.GreaterOrEqual(t, cellID, 0)
		require.Less(t, cellID, 99999999)

		areaCode, err := strconv.Atoi(sample.AreaCode)
		require.NoError(t, err)
		require.GreaterOrEqual(t, areaCode, 0)
		require.Less(t, areaCode, 99999)
	}
}

func TestGenerateFixedSequence(t *testing.T) {
	t.Parallel()

	captured := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	src := generator.NewRandomSource(generator.Config{
		Rand:  &sequence{values: []float64{0.1, 0.2, 0.3, 0.5, 0.5, 0.5, 0.5, 0.5}},
		Clock: func() time.Time { return captured },
	})

	sample := src.Generate()

	assert.Equal(t, "4G (LTE)", sample.Technology)
	assert.Equal(t, "LTE Band 3", sample.Band)
	assert.Equal(t, "1800 MHz (L1800)", sample.Frequency)
	assert.Equal(t, "Djezzy", sample.Operator)
	assert.Equal(t, "49999999", sample.CellID)
	assert.Equal(t, "49999", sample.AreaCode)
	assert.Equal(t, -85, sample.RSSI)
	assert.Equal(t, -100, sample.RSRP)
	assert.Equal(t, -15, sample.RSRQ)
	assert.Equal(t, captured, sample.CapturedAt)
}

func TestGenerateExtremeDraws(t *testing.T) {
	t.Parallel()

	low := generator.NewRandomSource(generator.Config{Rand: &sequence{values: []float64{0}}}).Generate()
	assert.Equal(t, generator.Technologies[0], low.Technology)
	assert.Equal(t, generator.Operators[0], low.Operator)
	assert.Equal(t, "0", low.CellID)
	assert.Equal(t, -70, low.RSSI)
	assert.Equal(t, -90, low.RSRP)
	assert.Equal(t, -10, low.RSRQ)

	high := generator.NewRandomSource(generator.Config{Rand: &sequence{values: []float64{0.999999999}}}).Generate()
	assert.Equal(t, generator.Technologies[len(generator.Technologies)-1], high.Technology)
	assert.Equal(t, generator.Bands[len(generator.Bands)-1].Name, high.Band)
	assert.Equal(t, generator.Operators[len(generator.Operators)-1], high.Operator)
	assert.Equal(t, -99, high.RSSI)
	assert.Equal(t, -109, high.RSRP)
	assert.Equal(t, -19, high.RSRQ)
}

func TestSeededSourcesAreDeterministic(t *testing.T) {
	t.Parallel()

	clock := func() time.Time { return time.Unix(0, 0) }
	a := generator.NewRandomSource(generator.Config{Seed: 42, Clock: clock})
	b := generator.NewRandomSource(generator.Config{Seed: 42, Clock: clock})

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Generate(), b.Generate())
	}
}

func TestGenerateCapturedAtAdvances(t *testing.T) {
	t.Parallel()

	src := generator.NewRandomSource(generator.Config{})
	first := src.Generate()
	second := src.Generate()

	assert.False(t, second.CapturedAt.Before(first.CapturedAt))
}
