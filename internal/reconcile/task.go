package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/jellyctl/internal/domain"
	"github.com/mmcdole/jellyctl/internal/ticks"
)

// taskDisplayNames maps desired-state task keys to the display names
// Jellyfin registers its tasks under. Owned here, not ambient, so the
// reconciler stays independently testable.
var taskDisplayNames = map[domain.TaskKey]string{
	domain.TaskScanMediaLibrary:   "Scan Media Library",
	domain.TaskChapterImages:      "Extract Chapter Images",
	domain.TaskTrickplayImages:    "Trickplay Image Extraction",
	domain.TaskIntroSkipDetection: "Detect Intros",
}

// TaskReconciler applies trigger schedules to the server's scheduled tasks
type TaskReconciler struct {
	gate   *Gate
	logger *slog.Logger
}

// NewTaskReconciler creates a task reconciler
func NewTaskReconciler(gate *Gate, logger *slog.Logger) *TaskReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskReconciler{gate: gate, logger: logger}
}

// Reconcile processes every schedule in order, returning one result per
// schedule. A failure in one task never stops the others.
func (r *TaskReconciler) Reconcile(ctx context.Context, schedules []domain.TaskSchedule, snapshot []domain.RemoteTask) []domain.OperationResult {
	results := make([]domain.OperationResult, 0, len(schedules))
	for _, schedule := range schedules {
		results = append(results, r.reconcileOne(ctx, schedule, snapshot))
	}
	return results
}

// findTask resolves a display name against the snapshot. Matching is a
// case-insensitive substring test: servers embed the display name in
// longer task names across versions.
func findTask(snapshot []domain.RemoteTask, displayName string) (domain.RemoteTask, bool) {
	needle := strings.ToLower(displayName)
	for _, task := range snapshot {
		if strings.Contains(strings.ToLower(task.Name), needle) {
			return task, true
		}
	}
	return domain.RemoteTask{}, false
}

// buildTriggers produces the trigger list for a schedule: one interval or
// one daily trigger, or an empty list for a disabled task.
func buildTriggers(schedule domain.TaskSchedule) ([]domain.TaskTrigger, error) {
	if !schedule.Enabled {
		return []domain.TaskTrigger{}, nil
	}

	if schedule.IsInterval() {
		interval, err := ticks.Interval(schedule.IntervalMinutes)
		if err != nil {
			return nil, err
		}
		return []domain.TaskTrigger{{
			Type:          domain.TriggerTypeInterval,
			IntervalTicks: interval,
		}}, nil
	}

	hour, minute, err := ticks.ParseTimeOfDay(schedule.At)
	if err != nil {
		return nil, err
	}
	daily, err := ticks.Daily(hour, minute)
	if err != nil {
		return nil, err
	}
	return []domain.TaskTrigger{{
		Type:           domain.TriggerTypeDaily,
		TimeOfDayTicks: daily,
	}}, nil
}

func (r *TaskReconciler) reconcileOne(ctx context.Context, schedule domain.TaskSchedule, snapshot []domain.RemoteTask) domain.OperationResult {
	result := domain.OperationResult{
		Kind: domain.UnitTask,
		Unit: string(schedule.Key),
	}

	displayName, ok := taskDisplayNames[schedule.Key]
	if !ok {
		// Unknown keys are rejected at validation; reaching this point
		// means the reconciler was fed an unvalidated document.
		result.Status = domain.StatusFailed
		result.Detail = fmt.Sprintf("no display name for task key %q", schedule.Key)
		return result
	}

	task, found := findTask(snapshot, displayName)
	if !found {
		// The target server version may simply lack the task, e.g.
		// intro detection before the feature is enabled.
		r.logger.Warn("task not registered on server", "key", schedule.Key, "name", displayName)
		result.Status = domain.StatusFailed
		result.Detail = fmt.Sprintf("task not found: %q", displayName)
		return result
	}

	triggers, err := buildTriggers(schedule)
	if err != nil {
		result.Status = domain.StatusFailed
		result.Detail = fmt.Sprintf("invalid schedule: %v", err)
		return result
	}

	r.logger.Info("applying task triggers", "key", schedule.Key, "task", task.Name, "id", task.ID, "triggers", len(triggers))

	if err := r.gate.UpdateTaskTriggers(ctx, task.ID, triggers); err != nil {
		r.logger.Error("applying task triggers failed", "key", schedule.Key, "id", task.ID, "error", err)
		result.Status = domain.StatusFailed
		result.Detail = fmt.Sprintf("trigger update failed: %v", err)
		return result
	}

	switch {
	case r.gate.DryRun():
		result.Status = domain.StatusSimulated
	case !schedule.Enabled:
		result.Status = domain.StatusApplied
		result.Detail = "task disabled, triggers cleared"
	case schedule.IsInterval():
		result.Status = domain.StatusApplied
		result.Detail = fmt.Sprintf("interval every %d minutes", schedule.IntervalMinutes)
	default:
		result.Status = domain.StatusApplied
		result.Detail = fmt.Sprintf("daily at %s", schedule.At)
	}

	if schedule.Enabled && schedule.LibraryScope != "" {
		// Trigger updates carry no library scope; the restriction stays
		// a manual setting.
		result.Warn(fmt.Sprintf("library scope %q cannot be applied via the API", schedule.LibraryScope))
	}

	return result
}
