package alert_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kubesimlab/kubesim/internal/logic/alert"
	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

func feedAlert(n int) cluster.Alert {
	return cluster.Alert{
		ID:        fmt.Sprintf("alert-%d", n),
		PodName:   "frontend",
		Type:      cluster.AlertUtilization,
		Severity:  cluster.SeverityWarning,
		Message:   fmt.Sprintf("alert number %d", n),
		Timestamp: time.Now(),
	}
}

func TestFeed_PrependOrder(t *testing.T) {
	t.Parallel()

	feed := alert.NewFeed(0)

	feed.Prepend(feedAlert(1))
	feed.Prepend(feedAlert(2), feedAlert(3))

	got := feed.List()
	require.Len(t, got, 3)

	// Most recent tick first; within a tick, original order.
	require.Equal(t, "alert-2", got[0].ID)
	require.Equal(t, "alert-3", got[1].ID)
	require.Equal(t, "alert-1", got[2].ID)

	latest, ok := feed.Latest()
	require.True(t, ok)
	require.Equal(t, "alert-2", latest.ID)
}

// Sixty ticks of one alert each never grow the feed past 50, and the
// survivors are the 50 most recent.
func TestFeed_Bounded(t *testing.T) {
	t.Parallel()

	feed := alert.NewFeed(alert.FeedCapacity)

	for n := 1; n <= 60; n++ {
		feed.Prepend(feedAlert(n))
		require.LessOrEqual(t, feed.Len(), alert.FeedCapacity)
	}

	got := feed.List()
	require.Len(t, got, alert.FeedCapacity)
	require.Equal(t, "alert-60", got[0].ID)
	require.Equal(t, "alert-11", got[len(got)-1].ID)
}

func TestFeed_EmptyPrependIsNoop(t *testing.T) {
	t.Parallel()

	feed := alert.NewFeed(5)
	feed.Prepend()

	require.Zero(t, feed.Len())

	_, ok := feed.Latest()
	require.False(t, ok)
}

func TestFeed_ListReturnsCopy(t *testing.T) {
	t.Parallel()

	feed := alert.NewFeed(5)
	feed.Prepend(feedAlert(1))

	got := feed.List()
	got[0].ID = "mutated"

	fresh := feed.List()
	require.Equal(t, "alert-1", fresh[0].ID)
}
