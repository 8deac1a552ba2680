package analysis

const (
	DefaultInterestMinScore = 3
	DefaultMaxSuggestions   = 3
)

// Options control the admission rules that changed over the product's history.
type Options struct {
	// InterestMinScore is the lowest interest score that is kept.
	InterestMinScore float64 `mapstructure:"interest-min-score" validate:"gte=0,lte=10"`
	// MaxSuggestions caps the kept suggestions. Zero keeps all of them.
	MaxSuggestions int `mapstructure:"max-suggestions" validate:"gte=0"`
	// DropLowSeveritySuggestions removes suggestions tagged low before capping.
	DropLowSeveritySuggestions bool `mapstructure:"drop-low-severity-suggestions"`
}

// DefaultOptions returns the stricter admission policy.
func DefaultOptions() Options {
	return Options{
		InterestMinScore:           DefaultInterestMinScore,
		MaxSuggestions:             DefaultMaxSuggestions,
		DropLowSeveritySuggestions: true,
	}
}

// LenientOptions returns the original policy: every interest scoring at least
// one and every suggestion, whatever its severity.
func LenientOptions() Options {
	return Options{
		InterestMinScore: 1,
	}
}
