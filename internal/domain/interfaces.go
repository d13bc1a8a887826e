package domain

// SampleSource produces synthetic samples on demand.
type SampleSource interface {
	Generate() Sample
}

// Clipboard receives exported screen text.
type Clipboard interface {
	WriteAll(text string) error
}
