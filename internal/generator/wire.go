package generator

import (
	"github.com/google/wire"

	"netmonitor/internal/domain"
)

// ProviderSet exposes the random sample source to wire injectors.
var ProviderSet = wire.NewSet(NewRandomSource, wire.Bind(new(domain.SampleSource), new(*RandomSource)))
