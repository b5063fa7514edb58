package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/jellyctl/internal/domain"
)

// Runner drives one full reconciliation pass: connectivity check, library
// phase, task phase, report assembly.
type Runner struct {
	gate      *Gate
	libraries *LibraryReconciler
	tasks     *TaskReconciler
	logger    *slog.Logger
}

// NewRunner creates a runner around a gated control plane
func NewRunner(gate *Gate, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		gate:      gate,
		libraries: NewLibraryReconciler(gate, logger),
		tasks:     NewTaskReconciler(gate, logger),
		logger:    logger,
	}
}

// Run executes the pass. A failed connectivity or auth check aborts the
// whole run with an error and no report; nothing downstream can succeed
// without a reachable, authenticated server. Per-unit failures end up in
// the report instead.
func (r *Runner) Run(ctx context.Context, state *domain.DesiredState) (*domain.RunReport, error) {
	info, err := r.gate.SystemInfo(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
		return nil, fmt.Errorf("connectivity check failed: %w", err)
	}
	r.logger.Info("connected to jellyfin", "server", info.Name, "version", info.Version)

	report := &domain.RunReport{
		Started: time.Now(),
		DryRun:  r.gate.DryRun(),
	}

	report.Results = append(report.Results, r.libraryPhase(ctx, state.Libraries)...)
	report.Results = append(report.Results, r.taskPhase(ctx, state.Tasks)...)

	return report, nil
}

// libraryPhase snapshots the server's libraries once, then reconciles
// every spec against it. A snapshot failure fails each library unit
// rather than aborting the run.
func (r *Runner) libraryPhase(ctx context.Context, specs []domain.LibrarySpec) []domain.OperationResult {
	if len(specs) == 0 {
		return nil
	}

	snapshot, err := r.gate.Libraries(ctx)
	if err != nil {
		r.logger.Error("listing libraries failed", "error", err)
		return failAll(domain.UnitLibrary, libraryNames(specs), fmt.Sprintf("listing libraries failed: %v", err))
	}

	return r.libraries.Reconcile(ctx, specs, snapshot)
}

// taskPhase mirrors libraryPhase for scheduled tasks
func (r *Runner) taskPhase(ctx context.Context, schedules []domain.TaskSchedule) []domain.OperationResult {
	if len(schedules) == 0 {
		return nil
	}

	snapshot, err := r.gate.Tasks(ctx)
	if err != nil {
		r.logger.Error("listing scheduled tasks failed", "error", err)
		return failAll(domain.UnitTask, taskKeys(schedules), fmt.Sprintf("listing tasks failed: %v", err))
	}

	return r.tasks.Reconcile(ctx, schedules, snapshot)
}

func failAll(kind domain.UnitKind, units []string, detail string) []domain.OperationResult {
	results := make([]domain.OperationResult, 0, len(units))
	for _, unit := range units {
		results = append(results, domain.OperationResult{
			Kind:   kind,
			Unit:   unit,
			Status: domain.StatusFailed,
			Detail: detail,
		})
	}
	return results
}

func libraryNames(specs []domain.LibrarySpec) []string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	return names
}

func taskKeys(schedules []domain.TaskSchedule) []string {
	keys := make([]string, 0, len(schedules))
	for _, s := range schedules {
		keys = append(keys, string(s.Key))
	}
	return keys
}
