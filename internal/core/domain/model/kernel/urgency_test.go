package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgencyFromString(t *testing.T) {
	t.Run("parses known tiers case-insensitively", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected kernel.Urgency
		}{
			{"normal", kernel.UrgencyNormal},
			{"Normal", kernel.UrgencyNormal},
			{"urgent", kernel.UrgencyUrgent},
			{"EXPRESS", kernel.UrgencyExpress},
		}

		for _, tc := range testCases {
			u, err := kernel.UrgencyFromString(tc.input)
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.expected, u)
		}
	})

	t.Run("rejects unknown tier", func(t *testing.T) {
		_, err := kernel.UrgencyFromString("sameday")
		require.Error(t, err)
	})
}

func TestUrgency_Validate(t *testing.T) {
	for _, u := range []kernel.Urgency{kernel.UrgencyNormal, kernel.UrgencyUrgent, kernel.UrgencyExpress} {
		require.NoError(t, u.Validate())
	}

	require.Error(t, kernel.UrgencyUnknown.Validate())
	require.Error(t, kernel.Urgency(42).Validate())
}

func TestUrgency_String(t *testing.T) {
	assert.Equal(t, "Normal", kernel.UrgencyNormal.String())
	assert.Equal(t, "Urgent", kernel.UrgencyUrgent.String())
	assert.Equal(t, "Express", kernel.UrgencyExpress.String())
	assert.Equal(t, "Unknown", kernel.UrgencyUnknown.String())
	assert.Equal(t, "Unknown", kernel.Urgency(42).String())
}
