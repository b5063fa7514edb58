package reconcile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/jellyctl/internal/domain"
)

func TestGateApplyModePassesThrough(t *testing.T) {
	fake := newFakeControlPlane()
	gate := NewGate(fake, false, nil)
	ctx := context.Background()

	lib, err := gate.CreateLibrary(ctx, "Movies", domain.CategoryMovie, "/media/movies")
	require.NoError(t, err)
	assert.Equal(t, "lib-1", lib.ID)

	require.NoError(t, gate.UpdateLibraryOptions(ctx, lib.ID, domain.LibraryOptions{}))
	require.NoError(t, gate.UpdateTaskTriggers(ctx, "task-1", nil))

	assert.Equal(t, []string{"Movies"}, fake.createCalls)
	assert.Equal(t, []string{"lib-1"}, fake.optionsCalls)
	assert.Empty(t, gate.Planned())
}

func TestGateDryRunWithholdsMutations(t *testing.T) {
	fake := newFakeControlPlane()
	gate := NewGate(fake, true, nil)
	ctx := context.Background()

	lib, err := gate.CreateLibrary(ctx, "Movies", domain.CategoryMovie, "/media/movies")
	require.NoError(t, err)

	// A placeholder ID lets the downstream options call proceed
	assert.True(t, strings.HasPrefix(lib.ID, "dry-run-"))
	assert.Equal(t, "Movies", lib.Name)

	require.NoError(t, gate.UpdateLibraryOptions(ctx, lib.ID, domain.LibraryOptions{}))
	require.NoError(t, gate.UpdateTaskTriggers(ctx, "task-1", []domain.TaskTrigger{{Type: domain.TriggerTypeDaily}}))

	// Nothing reached the transport
	assert.Empty(t, fake.createCalls)
	assert.Empty(t, fake.optionsCalls)
	assert.Empty(t, fake.triggerCalls)

	planned := gate.Planned()
	require.Len(t, planned, 3)
	assert.Equal(t, "CreateLibrary", planned[0].Op)
	assert.Equal(t, "UpdateLibraryOptions", planned[1].Op)
	assert.Equal(t, "UpdateTaskTriggers", planned[2].Op)
}

func TestGateReadsAlwaysExecute(t *testing.T) {
	fake := newFakeControlPlane()
	fake.libraries = []domain.RemoteLibrary{{ID: "lib-1", Name: "Movies"}}
	fake.tasks = []domain.RemoteTask{{ID: "task-1", Name: "Scan Media Library"}}
	gate := NewGate(fake, true, nil)
	ctx := context.Background()

	// Simulation must reflect real current state, not a guess
	libs, err := gate.Libraries(ctx)
	require.NoError(t, err)
	assert.Len(t, libs, 1)

	tasks, err := gate.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	info, err := gate.SystemInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fake", info.Name)
}
