package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	t.Run("NoForwardedHeaderUsesRemoteAddr", func(t *testing.T) {
		assert.Equal(t, "10.0.0.1", ClientIP("", "10.0.0.1"))
	})

	t.Run("SingleForwardedEntry", func(t *testing.T) {
		assert.Equal(t, "203.0.113.9", ClientIP("203.0.113.9", "10.0.0.1"))
	})

	t.Run("FirstEntryOfChainWins", func(t *testing.T) {
		assert.Equal(t, "203.0.113.9", ClientIP("203.0.113.9, 70.41.3.18, 150.172.238.178", "10.0.0.1"))
	})

	t.Run("EntriesAreTrimmed", func(t *testing.T) {
		assert.Equal(t, "203.0.113.9", ClientIP("  203.0.113.9 , 70.41.3.18", "10.0.0.1"))
	})

	t.Run("BlankHeaderFallsBack", func(t *testing.T) {
		assert.Equal(t, "10.0.0.1", ClientIP("   ", "10.0.0.1"))
	})
}

func TestPickHelpers(t *testing.T) {
	t.Run("ToPtrRoundTrip", func(t *testing.T) {
		p := ToPtr("value")
		assert.Equal(t, "value", *p)
	})

	t.Run("IsTrue", func(t *testing.T) {
		assert.False(t, IsTrue(nil))
		assert.False(t, IsTrue(ToPtr(false)))
		assert.True(t, IsTrue(ToPtr(true)))
	})
}
