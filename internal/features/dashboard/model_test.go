package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch-api/internal/features/reports"
)

func TestStatusCountsFrom(t *testing.T) {
	counts := statusCountsFrom(map[string]int64{
		reports.StatusPending:  3,
		reports.StatusResolved: 7,
	})

	require.Equal(t, int64(3), counts.Pending)
	require.Equal(t, int64(0), counts.Investigating)
	require.Equal(t, int64(7), counts.Resolved)
	require.Equal(t, int64(0), counts.Dismissed)
	require.Equal(t, int64(10), totalOf(counts))
}
