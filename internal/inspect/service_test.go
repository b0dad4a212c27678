package inspect

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
)

func awaitOutcome(t *testing.T, svc *Service) Outcome {
	t.Helper()
	select {
	case o := <-svc.Outcomes():
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func TestServiceDeliversOutcomes(t *testing.T) {
	t.Parallel()

	svc := NewService(NewEvaluator(EvaluatorOptions{}), nil)
	svc.Start(context.Background())
	defer svc.Stop()

	require.True(t, svc.Request(config.Item{ID: "notes"}))

	outcome := awaitOutcome(t, svc)
	assert.Equal(t, "notes", outcome.ItemID)
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Result.Installed)
}

func TestServiceReportsEvaluationErrors(t *testing.T) {
	t.Parallel()

	svc := NewService(NewEvaluator(EvaluatorOptions{}), nil)
	svc.Start(context.Background())
	defer svc.Stop()

	// A key lookup with no configured store errors out.
	require.True(t, svc.Request(config.Item{
		ID:    "vpn",
		Paths: []string{filepath.Join(t.TempDir(), "absent")},
		Key:   "vpn.deployed",
	}))

	outcome := awaitOutcome(t, svc)
	assert.Equal(t, "vpn", outcome.ItemID)
	assert.Error(t, outcome.Err)
}

func TestServiceProcessesInOrder(t *testing.T) {
	t.Parallel()

	svc := NewService(NewEvaluator(EvaluatorOptions{}), nil)
	svc.Start(context.Background())
	defer svc.Stop()

	ids := []string{"one", "two", "three"}
	for _, id := range ids {
		require.True(t, svc.Request(config.Item{ID: id}))
	}

	for _, want := range ids {
		assert.Equal(t, want, awaitOutcome(t, svc).ItemID)
	}
}

func TestServiceRequestBeforeStart(t *testing.T) {
	t.Parallel()

	svc := NewService(NewEvaluator(EvaluatorOptions{}), nil)
	assert.False(t, svc.Request(config.Item{ID: "notes"}))
}

func TestServiceStopClosesOutcomes(t *testing.T) {
	t.Parallel()

	svc := NewService(NewEvaluator(EvaluatorOptions{}), nil)
	svc.Start(context.Background())
	svc.Stop()

	_, open := <-svc.Outcomes()
	assert.False(t, open)
	assert.False(t, svc.Request(config.Item{ID: "notes"}))

	// Stop is idempotent.
	svc.Stop()
}
