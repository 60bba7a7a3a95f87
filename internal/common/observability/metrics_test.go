package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_ExportsThroughRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := NewWithRegisterer("recommender-test", reg)
	defer obs.Shutdown()

	ctx := context.Background()
	obs.Track(ctx, "recommend", time.Now().Add(-5*time.Millisecond), nil)
	obs.Track(ctx, "recommend", time.Now(), errors.New("boom"))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if strings.Contains(mf.GetName(), "operations_processed") {
			found = true
			assert.Len(t, mf.GetMetric(), 2, "one series per status")
		}
	}
	assert.True(t, found)
}

func TestNop_IsSafe(t *testing.T) {
	var nilObs *Observability
	assert.NotPanics(t, func() {
		Nop().Track(context.Background(), "x", time.Now(), nil)
		nilObs.RecordOperation(context.Background(), "x", "ok")
		nilObs.Shutdown()
	})
}
