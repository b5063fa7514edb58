package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/jellyctl/internal/domain"
)

func desiredState() *domain.DesiredState {
	return &domain.DesiredState{
		Server: domain.ServerSpec{URL: "http://jellyfin:8096", APIKey: "key"},
		Libraries: []domain.LibrarySpec{
			{Name: "Movies", Category: domain.CategoryMovie, Folders: []string{"/media/movies"}},
		},
		Tasks: []domain.TaskSchedule{
			{Key: domain.TaskScanMediaLibrary, Enabled: true, IntervalMinutes: 30},
		},
	}
}

func TestEndToEndApply(t *testing.T) {
	fake := newFakeControlPlane()
	fake.tasks = []domain.RemoteTask{{ID: "RefreshLibrary", Name: "Scan Media Library"}}
	runner := NewRunner(NewGate(fake, false, nil), nil)

	rep, err := runner.Run(context.Background(), desiredState())
	require.NoError(t, err)

	// One create with the first folder, one options call for its ID, one
	// trigger update with a single 30-minute interval trigger.
	assert.Equal(t, []string{"Movies"}, fake.createCalls)
	assert.Equal(t, []string{"lib-1"}, fake.optionsCalls)
	triggers := fake.triggerCalls["RefreshLibrary"]
	require.Len(t, triggers, 1)
	assert.Equal(t, int64(18_000_000_000), triggers[0].IntervalTicks)

	require.Len(t, rep.Results, 2)
	assert.Equal(t, domain.StatusApplied, rep.Results[0].Status)
	assert.Equal(t, domain.StatusApplied, rep.Results[1].Status)
	assert.False(t, rep.Failed())
}

func TestConnectivityFailureAbortsRun(t *testing.T) {
	fake := newFakeControlPlane()
	fake.systemInfoErr = domain.ErrServerUnreachable
	runner := NewRunner(NewGate(fake, false, nil), nil)

	rep, err := runner.Run(context.Background(), desiredState())
	require.ErrorIs(t, err, domain.ErrServerUnreachable)
	assert.Nil(t, rep)
	assert.Empty(t, fake.createCalls)
}

func TestAuthFailureAbortsRun(t *testing.T) {
	fake := newFakeControlPlane()
	fake.systemInfoErr = domain.ErrAuthFailed
	runner := NewRunner(NewGate(fake, false, nil), nil)

	_, err := runner.Run(context.Background(), desiredState())
	require.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestReportHasOneEntryPerUnitRegardlessOfFailures(t *testing.T) {
	fake := newFakeControlPlane()
	fake.createErr["Movies"] = &domain.APIError{Status: 400, Body: "nope"}
	fake.tasks = []domain.RemoteTask{{ID: "RefreshLibrary", Name: "Scan Media Library"}}
	runner := NewRunner(NewGate(fake, false, nil), nil)

	state := desiredState()
	state.Libraries = append(state.Libraries, domain.LibrarySpec{
		Name: "Shows", Category: domain.CategorySeries, Folders: []string{"/media/shows"},
	})

	rep, err := runner.Run(context.Background(), state)
	require.NoError(t, err)

	// |libraries| + |tasks| entries, in document order
	require.Len(t, rep.Results, 3)
	assert.Equal(t, "Movies", rep.Results[0].Unit)
	assert.Equal(t, domain.StatusFailed, rep.Results[0].Status)
	assert.Equal(t, "Shows", rep.Results[1].Unit)
	assert.Equal(t, domain.StatusApplied, rep.Results[1].Status)
	assert.Equal(t, string(domain.TaskScanMediaLibrary), rep.Results[2].Unit)
	assert.Equal(t, domain.StatusApplied, rep.Results[2].Status)
	assert.True(t, rep.Failed())
}

func TestDryRunEndToEnd(t *testing.T) {
	fake := newFakeControlPlane()
	fake.tasks = []domain.RemoteTask{{ID: "RefreshLibrary", Name: "Scan Media Library"}}
	gate := NewGate(fake, true, nil)
	runner := NewRunner(gate, nil)

	rep, err := runner.Run(context.Background(), desiredState())
	require.NoError(t, err)

	// Zero mutations reached the transport
	assert.Empty(t, fake.createCalls)
	assert.Empty(t, fake.optionsCalls)
	assert.Empty(t, fake.triggerCalls)

	// But the report still carries one simulated entry per unit
	require.Len(t, rep.Results, 2)
	assert.Equal(t, domain.StatusSimulated, rep.Results[0].Status)
	assert.Equal(t, domain.StatusSimulated, rep.Results[1].Status)
	assert.True(t, rep.DryRun)
	assert.Len(t, gate.Planned(), 3)
}

func TestSnapshotFailureFailsPhaseUnitsOnly(t *testing.T) {
	fake := newFakeControlPlane()
	fake.librariesErr = &domain.APIError{Status: 500, Body: "boom"}
	fake.tasks = []domain.RemoteTask{{ID: "RefreshLibrary", Name: "Scan Media Library"}}
	runner := NewRunner(NewGate(fake, false, nil), nil)

	rep, err := runner.Run(context.Background(), desiredState())
	require.NoError(t, err)

	require.Len(t, rep.Results, 2)
	assert.Equal(t, domain.StatusFailed, rep.Results[0].Status)
	// The task phase still ran
	assert.Equal(t, domain.StatusApplied, rep.Results[1].Status)
}
