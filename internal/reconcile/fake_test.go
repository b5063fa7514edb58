package reconcile

import (
	"context"
	"fmt"

	"github.com/mmcdole/jellyctl/internal/domain"
)

// fakeControlPlane is an in-memory domain.ControlPlane that records every
// mutating call and can be told to fail specific operations.
type fakeControlPlane struct {
	libraries []domain.RemoteLibrary
	tasks     []domain.RemoteTask

	systemInfoErr error
	librariesErr  error
	tasksErr      error
	createErr     map[string]error // by library name
	optionsErr    map[string]error // by library ID
	triggersErr   map[string]error // by task ID

	createCalls   []string
	optionsCalls  []string // library IDs
	triggerCalls  map[string][]domain.TaskTrigger
	nextLibraryID int
}

func newFakeControlPlane() *fakeControlPlane {
	return &fakeControlPlane{
		createErr:    make(map[string]error),
		optionsErr:   make(map[string]error),
		triggersErr:  make(map[string]error),
		triggerCalls: make(map[string][]domain.TaskTrigger),
	}
}

func (f *fakeControlPlane) SystemInfo(ctx context.Context) (domain.ServerInfo, error) {
	if f.systemInfoErr != nil {
		return domain.ServerInfo{}, f.systemInfoErr
	}
	return domain.ServerInfo{Name: "fake", Version: "10.9.0"}, nil
}

func (f *fakeControlPlane) Libraries(ctx context.Context) ([]domain.RemoteLibrary, error) {
	if f.librariesErr != nil {
		return nil, f.librariesErr
	}
	return f.libraries, nil
}

func (f *fakeControlPlane) CreateLibrary(ctx context.Context, name string, category domain.Category, folder string) (domain.RemoteLibrary, error) {
	f.createCalls = append(f.createCalls, name)
	if err := f.createErr[name]; err != nil {
		return domain.RemoteLibrary{}, err
	}
	f.nextLibraryID++
	lib := domain.RemoteLibrary{ID: fmt.Sprintf("lib-%d", f.nextLibraryID), Name: name}
	f.libraries = append(f.libraries, lib)
	return lib, nil
}

func (f *fakeControlPlane) UpdateLibraryOptions(ctx context.Context, libraryID string, opts domain.LibraryOptions) error {
	f.optionsCalls = append(f.optionsCalls, libraryID)
	return f.optionsErr[libraryID]
}

func (f *fakeControlPlane) Tasks(ctx context.Context) ([]domain.RemoteTask, error) {
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	return f.tasks, nil
}

func (f *fakeControlPlane) UpdateTaskTriggers(ctx context.Context, taskID string, triggers []domain.TaskTrigger) error {
	if err := f.triggersErr[taskID]; err != nil {
		return err
	}
	f.triggerCalls[taskID] = triggers
	return nil
}
