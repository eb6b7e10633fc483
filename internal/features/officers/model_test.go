package officers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidRank(t *testing.T) {
	for _, rank := range []string{RankASP, RankDSP, RankSP, RankCSP, RankACP, RankDCP, RankCP} {
		require.True(t, IsValidRank(rank), "rank %s should be valid", rank)
	}

	require.False(t, IsValidRank("SGT"))
	require.False(t, IsValidRank("asp"))
	require.False(t, IsValidRank(""))
}
