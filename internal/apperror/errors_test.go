package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_IsRetryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindLocationLookupFailed, true},
		{KindWeatherLookupFailed, true},
		{KindTimeout, true},
		{KindInvalidLocationData, false},
		{KindConfiguration, false},
		{Kind("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.IsRetryable())
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *Error
		kind      Kind
		retryable bool
	}{
		{"location lookup", LocationLookupFailed("boom"), KindLocationLookupFailed, true},
		{"invalid location", InvalidLocationData("boom"), KindInvalidLocationData, false},
		{"weather lookup", WeatherLookupFailed("boom"), KindWeatherLookupFailed, true},
		{"timeout", Timeout("boom"), KindTimeout, true},
		{"configuration", Configuration("boom"), KindConfiguration, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind())
			assert.Equal(t, "boom", tt.err.Message())
			assert.Equal(t, tt.retryable, tt.err.Retryable())
			assert.Nil(t, tt.err.Unwrap())
		})
	}
}

func TestSameKindAgreesOnRetryability(t *testing.T) {
	a := WeatherLookupFailed("first")
	b := WeatherLookupFailed("second")
	assert.Equal(t, a.Retryable(), b.Retryable())
}

func TestNewWithRetry_CallerDefinedKind(t *testing.T) {
	const kindQuota Kind = "QUOTA_EXCEEDED"

	err := NewWithRetry(kindQuota, "daily quota used up", true)
	assert.True(t, err.Retryable())
	assert.Equal(t, kindQuota, err.Kind())

	// Without an override, an unknown kind is permanent.
	assert.False(t, New(kindQuota, "daily quota used up").Retryable())
}

func TestError_Format(t *testing.T) {
	err := LocationLookupFailed("request failed with status 500")
	assert.Equal(t, "[LOCATION_LOOKUP_FAILED] request failed with status 500", err.Error())

	wrapped := Wrap(errors.New("connection refused"), KindWeatherLookupFailed, "weather unavailable")
	assert.Equal(t, "[WEATHER_LOOKUP_FAILED] weather unavailable: connection refused", wrapped.Error())

	formatted := Newf(KindInvalidLocationData, "bad coordinate %q", "abc")
	assert.Equal(t, `bad coordinate "abc"`, formatted.Message())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindTimeout, "ignored"))

	cause := InvalidLocationData("no loc field")
	wrapped := Wrap(cause, KindWeatherLookupFailed, cause.Message())

	// Classification follows the new kind.
	assert.True(t, wrapped.Retryable())
	assert.True(t, errors.Is(wrapped, cause))

	var inner *Error
	require.True(t, errors.As(wrapped.Unwrap(), &inner))
	assert.Equal(t, KindInvalidLocationData, inner.Kind())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, KindTimeout, KindOf(fmt.Errorf("attempt: %w", Timeout("slow"))))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", WeatherLookupFailed("down"))))
	assert.False(t, IsRetryable(fmt.Errorf("wrapped: %w", InvalidLocationData("bad"))))
}

func TestStructuralEquality(t *testing.T) {
	assert.Equal(t, WeatherLookupFailed("x"), WeatherLookupFailed("x"))
	assert.NotEqual(t, WeatherLookupFailed("x"), LocationLookupFailed("x"))
}
