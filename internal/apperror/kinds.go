// Package apperror defines the closed set of failure kinds that travel through
// the effect chain, each tagged with whether retrying it can ever help.
package apperror

// Kind identifies a class of failure.
// Kinds are strings so they read well in logs and JSON payloads.
type Kind string

const (
	// KindLocationLookupFailed indicates the geolocation service could not be reached
	// or answered with an error.
	KindLocationLookupFailed Kind = "LOCATION_LOOKUP_FAILED"

	// KindInvalidLocationData indicates the geolocation payload had missing or
	// malformed coordinates. Retrying cannot fix it.
	KindInvalidLocationData Kind = "INVALID_LOCATION_DATA"

	// KindWeatherLookupFailed indicates the weather service could not be reached
	// or answered with an error.
	KindWeatherLookupFailed Kind = "WEATHER_LOOKUP_FAILED"

	// KindTimeout indicates a single attempt exceeded its deadline.
	KindTimeout Kind = "TIMEOUT"

	// KindConfiguration indicates an invalid configuration, rejected before any work runs.
	KindConfiguration Kind = "CONFIGURATION_ERROR"
)

// defaultRetryable maps each known kind to its retry classification.
var defaultRetryable = map[Kind]bool{
	KindLocationLookupFailed: true,
	KindWeatherLookupFailed:  true,
	KindTimeout:              true,

	KindInvalidLocationData: false,
	KindConfiguration:       false,
}

// IsRetryable returns the default classification of the kind.
// Unknown kinds are permanent.
func (k Kind) IsRetryable() bool {
	return defaultRetryable[k]
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
