package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/jellyctl/internal/domain"
	"github.com/mmcdole/jellyctl/internal/jellyfin"
)

// LibraryReconciler converges one library spec at a time against a
// pre-fetched snapshot of the server's libraries.
type LibraryReconciler struct {
	gate   *Gate
	logger *slog.Logger
}

// NewLibraryReconciler creates a library reconciler
func NewLibraryReconciler(gate *Gate, logger *slog.Logger) *LibraryReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryReconciler{gate: gate, logger: logger}
}

// Reconcile processes every spec in order, returning one result per spec.
// A failure in one library never stops the others.
func (r *LibraryReconciler) Reconcile(ctx context.Context, specs []domain.LibrarySpec, snapshot []domain.RemoteLibrary) []domain.OperationResult {
	results := make([]domain.OperationResult, 0, len(specs))
	for _, spec := range specs {
		results = append(results, r.reconcileOne(ctx, spec, snapshot))
	}
	return results
}

// findByName resolves a spec against the snapshot, case-sensitive exact
// match. A library with a matching name is assumed to be "this" library.
func findByName(snapshot []domain.RemoteLibrary, name string) (domain.RemoteLibrary, bool) {
	for _, lib := range snapshot {
		if lib.Name == name {
			return lib, true
		}
	}
	return domain.RemoteLibrary{}, false
}

func (r *LibraryReconciler) reconcileOne(ctx context.Context, spec domain.LibrarySpec, snapshot []domain.RemoteLibrary) domain.OperationResult {
	result := domain.OperationResult{
		Kind: domain.UnitLibrary,
		Unit: spec.Name,
	}

	r.logger.Info("reconciling library", "name", spec.Name, "category", spec.Category)

	// Only the first folder is managed: creation accepts a single path
	// and there is no folder reconciliation afterwards. Every extra
	// folder is a warning, whether the library is new or pre-existing.
	var extraFolderWarnings []string
	if len(spec.Folders) > 1 {
		extras := spec.Folders[1:]
		r.logger.Warn("multiple folders configured, only the first is managed",
			"name", spec.Name, "extra", extras)
		for _, folder := range extras {
			extraFolderWarnings = append(extraFolderWarnings,
				fmt.Sprintf("folder %q requires manual addition", folder))
		}
	}

	lib, exists := findByName(snapshot, spec.Name)
	if exists {
		r.logger.Info("library exists, re-applying options", "name", spec.Name, "id", lib.ID)
		result.Status = domain.StatusSkipped
		result.Detail = fmt.Sprintf("existing library %s, options re-applied", lib.ID)
	} else {
		created, err := r.gate.CreateLibrary(ctx, spec.Name, spec.Category, spec.Folders[0])
		if err != nil {
			r.logger.Error("library creation failed", "name", spec.Name, "error", err)
			result.Status = domain.StatusFailed
			result.Detail = fmt.Sprintf("create failed: %v", err)
			return result
		}
		lib = created
		result.Status = domain.StatusApplied
		result.Detail = fmt.Sprintf("created library %s with folder %s", lib.ID, spec.Folders[0])
	}

	// Options are re-applied unconditionally so config drift is corrected
	// even for pre-existing libraries.
	opts, unsupported := jellyfin.BuildLibraryOptions(spec)
	if err := r.gate.UpdateLibraryOptions(ctx, lib.ID, opts); err != nil {
		r.logger.Error("applying library options failed", "name", spec.Name, "id", lib.ID, "error", err)
		result.Status = domain.StatusFailed
		// Keep the identifier in the detail: the library may exist with
		// default options, and the next run converges it.
		result.Detail = fmt.Sprintf("options apply failed for library %s: %v", lib.ID, err)
		return result
	}

	if r.gate.DryRun() {
		result.Status = domain.StatusSimulated
	}
	for _, w := range extraFolderWarnings {
		result.Warn(w)
	}
	for _, w := range unsupported {
		r.logger.Warn("unsupported setting", "library", spec.Name, "warning", w)
		result.Warn(w)
	}

	return result
}
