package policy

import (
	"math"
	"testing"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryPolicy(t *testing.T) {
	tests := []struct {
		name    string
		input   Settings
		wantErr bool
	}{
		{
			name:  "Happy Path",
			input: DefaultSettings(),
		},
		{
			name:  "Run Once",
			input: Settings{MaxRetries: 0, BackoffFactor: 1.0},
		},
		{
			name:  "Negative Initial Delay Is Clamped",
			input: Settings{MaxRetries: 2, BackoffFactor: 2, InitialDelay: -time.Second},
		},
		{
			name:    "Backoff Factor Below One",
			input:   Settings{MaxRetries: 2, BackoffFactor: 0.5},
			wantErr: true,
		},
		{
			name:    "Zero Backoff Factor",
			input:   Settings{MaxRetries: 2},
			wantErr: true,
		},
		{
			name:    "NaN Backoff Factor",
			input:   Settings{MaxRetries: 2, BackoffFactor: math.NaN()},
			wantErr: true,
		},
		{
			name:    "Negative Retries",
			input:   Settings{MaxRetries: -1, BackoffFactor: 1},
			wantErr: true,
		},
		{
			name:    "Negative Attempt Timeout",
			input:   Settings{BackoffFactor: 1, AttemptTimeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "Negative Max Delay",
			input:   Settings{BackoffFactor: 1, MaxDelay: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewRetryPolicy(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.GreaterOrEqual(t, p.InitialDelay(), time.Duration(0))
				return
			}

			require.Error(t, err)
			assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
			assert.False(t, apperror.IsRetryable(err))
		})
	}
}

func TestRetryPolicy_Delay(t *testing.T) {
	p, err := NewRetryPolicy(Settings{
		MaxRetries:    4,
		BackoffFactor: 2,
		InitialDelay:  100 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), p.Delay(0))
	assert.Equal(t, 100*time.Millisecond, p.Delay(1))
	assert.Equal(t, 200*time.Millisecond, p.Delay(2))
	assert.Equal(t, 400*time.Millisecond, p.Delay(3))
	assert.Equal(t, 800*time.Millisecond, p.Delay(4))
}

func TestRetryPolicy_DelaysFixedInterval(t *testing.T) {
	p, err := NewRetryPolicy(Settings{MaxRetries: 3, BackoffFactor: 1, InitialDelay: time.Second})
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, p.Delays())
}

func TestRetryPolicy_DelaysDefault(t *testing.T) {
	p, err := NewRetryPolicy(DefaultSettings())
	require.NoError(t, err)

	delays := p.Delays()
	require.Len(t, delays, 3)
	assert.Equal(t, 1000*time.Millisecond, delays[0])
	assert.InDelta(t, float64(1200*time.Millisecond), float64(delays[1]), float64(time.Microsecond))
	assert.InDelta(t, float64(1440*time.Millisecond), float64(delays[2]), float64(time.Microsecond))
}

func TestRetryPolicy_ZeroInitialDelayNeverWaits(t *testing.T) {
	p, err := NewRetryPolicy(Settings{MaxRetries: 3, BackoffFactor: 3, InitialDelay: -5 * time.Second})
	require.NoError(t, err)

	for _, d := range p.Delays() {
		assert.Equal(t, time.Duration(0), d)
	}
}

func TestRetryPolicy_MaxDelayCaps(t *testing.T) {
	p, err := NewRetryPolicy(Settings{
		MaxRetries:    5,
		BackoffFactor: 10,
		InitialDelay:  time.Second,
		MaxDelay:      30 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{
		time.Second, 10 * time.Second, 30 * time.Second, 30 * time.Second, 30 * time.Second,
	}, p.Delays())
}

func TestRetryPolicy_DelayOverflow(t *testing.T) {
	p, err := NewRetryPolicy(Settings{MaxRetries: 200, BackoffFactor: 10, InitialDelay: time.Hour})
	require.NoError(t, err)

	assert.Equal(t, time.Duration(math.MaxInt64), p.Delay(200))
}

func TestRetryPolicy_SettingsRoundTrip(t *testing.T) {
	in := DefaultSettings()
	p, err := NewRetryPolicy(in)
	require.NoError(t, err)

	assert.Equal(t, in, p.Settings())
	assert.Empty(t, RetryPolicy{}.Delays())
}
