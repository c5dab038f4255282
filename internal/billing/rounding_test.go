package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToBillingIncrement(t *testing.T) {
	// 13 minutes at 6-minute increments bills as 0.3 hours
	assert.Equal(t, 0.3, RoundToBillingIncrement(13, 0.1))

	// Zero duration bills nothing
	assert.Equal(t, 0.0, RoundToBillingIncrement(0, 0.1))

	// Exact multiples stay exact
	assert.Equal(t, 6.0, RoundToBillingIncrement(360, 1.0))
	assert.Equal(t, 0.5, RoundToBillingIncrement(30, 0.25))

	// Quarter-hour multiples stay exact at two decimals
	assert.Equal(t, 0.75, RoundToBillingIncrement(31, 0.25))

	// Any fraction of an increment bills as a full increment
	assert.Equal(t, 0.25, RoundToBillingIncrement(1, 0.25))
	assert.Equal(t, 1.0, RoundToBillingIncrement(1, 1.0))
	assert.Equal(t, 0.1, RoundToBillingIncrement(0.001, 0.1))

	// One second past the boundary rolls to the next increment
	assert.Equal(t, 0.2, RoundToBillingIncrement(6.02, 0.1))
}

func TestRoundToBillingIncrementCeilingProperty(t *testing.T) {
	// The result is the smallest non-negative multiple of the increment
	// whose minutes cover the exact minutes worked.
	increments := []float64{0.1, 0.25, 0.5, 1.0}
	minutes := []float64{0, 0.5, 1, 5.99, 6, 6.01, 13, 29, 30, 31, 59, 60, 61, 360, 481.7}

	for _, inc := range increments {
		for _, m := range minutes {
			got := RoundToBillingIncrement(m, inc)

			// Non-negative multiple of the increment (to 1 decimal)
			steps := got / inc
			assert.InDelta(t, math.Round(steps), steps, 1e-9,
				"result %v is not a multiple of increment %v for %v minutes", got, inc, m)
			assert.GreaterOrEqual(t, got, 0.0)

			// Covers the time worked
			assert.GreaterOrEqual(t, got*60+1e-9, m,
				"result %v hours does not cover %v minutes", got, m)

			// Smallest such multiple: one increment less would not cover
			if got >= inc {
				assert.Less(t, (got-inc)*60, m,
					"result %v is not the smallest covering multiple for %v minutes at %v", got, m, inc)
			}
		}
	}
}

func TestRoundToBillingIncrementPure(t *testing.T) {
	first := RoundToBillingIncrement(13, 0.1)
	second := RoundToBillingIncrement(13, 0.1)
	assert.Equal(t, first, second)
}

func TestValidIncrement(t *testing.T) {
	for _, h := range []float64{0.1, 0.25, 0.5, 1.0} {
		assert.True(t, ValidIncrement(h))
	}
	for _, h := range []float64{0, 0.2, 0.3, 2.0, -0.1} {
		assert.False(t, ValidIncrement(h))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "1h 13m", FormatDuration(73))
	assert.Equal(t, "2h", FormatDuration(120))
	assert.Equal(t, "0m", FormatDuration(0.2))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:07", FormatElapsed(7))
	assert.Equal(t, "12:05", FormatElapsed(725))
	assert.Equal(t, "1:00:59", FormatElapsed(3659))
}
