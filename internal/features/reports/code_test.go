package reports

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReportCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^CR-[A-F0-9]{8}$`)
	for i := 0; i < 100; i++ {
		code := NewReportCode()
		require.True(t, pattern.MatchString(code), "unexpected code %q", code)
	}
}

func TestNewReportCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[NewReportCode()] = true
	}
	// 32 bits of randomness; 100 draws colliding entirely would mean a
	// broken generator.
	require.Greater(t, len(seen), 90)
}

func TestIsReportCode(t *testing.T) {
	require.True(t, IsReportCode("CR-1A2B3C4D"))
	require.True(t, IsReportCode("cr-1a2b3c4d"))
	require.False(t, IsReportCode("CR-1234"))
	require.False(t, IsReportCode("XR-1A2B3C4D"))
	require.False(t, IsReportCode("downtown robbery"))
	require.False(t, IsReportCode(""))
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "CR-1A2B3C4D", normalizeCode("  cr-1a2b3c4d "))
}
