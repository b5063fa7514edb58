// Package reconcile converges a desired Jellyfin configuration against the
// server's actual state, one library and one task at a time.
package reconcile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmcdole/jellyctl/internal/domain"
)

// PlannedChange records one mutation that simulate mode withheld
type PlannedChange struct {
	Op      string
	Target  string
	Payload any
}

// Gate wraps the mutating surface of a ControlPlane. In apply mode every
// call passes through. In simulate mode mutations are recorded and answered
// with synthetic success; reads always hit the real server, since a dry run
// against guessed state would be meaningless.
type Gate struct {
	client  domain.ControlPlane
	dryRun  bool
	logger  *slog.Logger
	planned []PlannedChange
}

// NewGate creates an execution-mode gate around client
func NewGate(client domain.ControlPlane, dryRun bool, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{client: client, dryRun: dryRun, logger: logger}
}

// DryRun reports whether the gate is simulating
func (g *Gate) DryRun() bool {
	return g.dryRun
}

// Planned returns the mutations recorded during a simulated run
func (g *Gate) Planned() []PlannedChange {
	return g.planned
}

func (g *Gate) record(op, target string, payload any) {
	g.planned = append(g.planned, PlannedChange{Op: op, Target: target, Payload: payload})
	g.logger.Info("dry-run: withholding mutation", "op", op, "target", target)
}

func (g *Gate) SystemInfo(ctx context.Context) (domain.ServerInfo, error) {
	return g.client.SystemInfo(ctx)
}

func (g *Gate) Libraries(ctx context.Context) ([]domain.RemoteLibrary, error) {
	return g.client.Libraries(ctx)
}

// CreateLibrary passes through in apply mode. In simulate mode it returns
// a placeholder library so the subsequent options call can proceed against
// an identifier.
func (g *Gate) CreateLibrary(ctx context.Context, name string, category domain.Category, folder string) (domain.RemoteLibrary, error) {
	if g.dryRun {
		g.record("CreateLibrary", name, map[string]string{
			"name":     name,
			"category": string(category),
			"folder":   folder,
		})
		return domain.RemoteLibrary{
			ID:   "dry-run-" + uuid.NewString(),
			Name: name,
		}, nil
	}
	return g.client.CreateLibrary(ctx, name, category, folder)
}

func (g *Gate) UpdateLibraryOptions(ctx context.Context, libraryID string, opts domain.LibraryOptions) error {
	if g.dryRun {
		g.record("UpdateLibraryOptions", libraryID, opts)
		return nil
	}
	return g.client.UpdateLibraryOptions(ctx, libraryID, opts)
}

func (g *Gate) Tasks(ctx context.Context) ([]domain.RemoteTask, error) {
	return g.client.Tasks(ctx)
}

func (g *Gate) UpdateTaskTriggers(ctx context.Context, taskID string, triggers []domain.TaskTrigger) error {
	if g.dryRun {
		g.record("UpdateTaskTriggers", taskID, triggers)
		return nil
	}
	return g.client.UpdateTaskTriggers(ctx, taskID, triggers)
}
