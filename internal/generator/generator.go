package generator

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"netmonitor/internal/domain"
)

const (
	DefaultMCC = "603"
	DefaultMNC = "01"

	maxCellID   = 99999999
	maxAreaCode = 99999
)

// Band pairs a band label with its carrier frequency label.
type Band struct {
	Name      string
	Frequency string
}

var (
	Technologies = []string{"4G (LTE)", "5G (NR)", "3G (UMTS)", "4G+ (LTE-A)"}
	Operators    = []string{"Mobilis", "Djezzy", "Ooredoo", "Verizon", "T-Mobile", "Vodafone"}
	Bands        = []Band{
		{Name: "LTE Band 1", Frequency: "2100 MHz (L2100)"},
		{Name: "LTE Band 3", Frequency: "1800 MHz (L1800)"},
		{Name: "LTE Band 20", Frequency: "800 MHz (L800)"},
		{Name: "5G NR n78", Frequency: "3500 MHz"},
		{Name: "5G NR n41", Frequency: "2500 MHz"},
	}
)

// Float64Source yields pseudo-random values in [0, 1). *rand.Rand satisfies it.
type Float64Source interface {
	Float64() float64
}

// Config describes how samples are synthesised.
type Config struct {
	// Rand overrides the random source. When nil a source seeded with Seed is used.
	Rand Float64Source
	// Seed seeds the default source; zero means the current time.
	Seed  int64
	Clock func() time.Time
}

// RandomSource synthesises telemetry samples.
type RandomSource struct {
	mu    sync.Mutex
	rnd   Float64Source
	clock func() time.Time
}

func NewRandomSource(cfg Config) *RandomSource {
	rnd := cfg.Rand
	if rnd == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rnd = rand.New(rand.NewSource(seed))
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &RandomSource{rnd: rnd, clock: clock}
}

// Generate returns a new synthetic sample. The draw order is fixed so that a
// fixed random sequence always produces the same sample.
func (s *RandomSource) Generate() domain.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	technology := Technologies[s.scaled(len(Technologies))]
	band := Bands[s.scaled(len(Bands))]
	operator := Operators[s.scaled(len(Operators))]

	cellID := s.scaled(maxCellID)
	areaCode := s.scaled(maxAreaCode)

	return domain.Sample{
		Operator:   operator,
		Technology: technology,
		CellID:     strconv.Itoa(cellID),
		AreaCode:   strconv.Itoa(areaCode),
		MCC:        DefaultMCC,
		MNC:        DefaultMNC,
		RSSI:       -70 - s.scaled(30),
		RSRP:       -90 - s.scaled(20),
		RSRQ:       -10 - s.scaled(10),
		Band:       band.Name,
		Frequency:  band.Frequency,
		CapturedAt: s.clock(),
		Origin:     domain.OriginSynthetic,
	}
}

// scaled returns floor(r * n) for the next draw r, kept inside [0, n).
func (s *RandomSource) scaled(n int) int {
	r := s.rnd.Float64()
	if r < 0 {
		r = 0
	}
	v := int(r * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

var _ domain.SampleSource = (*RandomSource)(nil)
