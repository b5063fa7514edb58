package config

import (
	"fmt"

	"github.com/mmcdole/jellyctl/internal/domain"
	"github.com/mmcdole/jellyctl/internal/ticks"
)

// Validate checks a converted DesiredState. Every violation is a
// ConfigError so callers can distinguish bad documents from API failures.
func Validate(state *domain.DesiredState) error {
	if state.Server.URL == "" {
		return &domain.ConfigError{Field: "server.url", Reason: "required"}
	}

	names := make(map[string]bool, len(state.Libraries))
	for i, lib := range state.Libraries {
		field := fmt.Sprintf("libraries[%d]", i)
		if lib.Name == "" {
			return &domain.ConfigError{Field: field + ".name", Reason: "required"}
		}
		if names[lib.Name] {
			// Two specs with one name would both see "not found" in the
			// same snapshot and both attempt creation.
			return &domain.ConfigError{Field: field + ".name", Reason: fmt.Sprintf("duplicate library name %q", lib.Name)}
		}
		names[lib.Name] = true
		if !lib.Category.Valid() {
			return &domain.ConfigError{Field: field + ".category", Reason: fmt.Sprintf("unknown category %q", lib.Category)}
		}
		if len(lib.Folders) == 0 {
			return &domain.ConfigError{Field: field + ".folders", Reason: "at least one folder is required"}
		}
		for j, folder := range lib.Folders {
			if folder == "" {
				return &domain.ConfigError{Field: fmt.Sprintf("%s.folders[%d]", field, j), Reason: "folder path cannot be empty"}
			}
		}
	}

	for _, task := range state.Tasks {
		field := fmt.Sprintf("scheduled_tasks.%s", task.Key)
		if !task.Key.Valid() {
			return &domain.ConfigError{Field: field, Reason: fmt.Sprintf("unknown task key %q", task.Key)}
		}
		if !task.Enabled {
			// A disabled task clears its triggers; no schedule needed
			continue
		}
		hasInterval := task.IntervalMinutes != 0
		hasDaily := task.At != ""
		switch {
		case hasInterval && hasDaily:
			return &domain.ConfigError{Field: field, Reason: "interval_minutes and daily schedule are mutually exclusive"}
		case !hasInterval && !hasDaily:
			return &domain.ConfigError{Field: field, Reason: "one of interval_minutes or a daily schedule is required"}
		case hasInterval && task.IntervalMinutes < 0:
			return &domain.ConfigError{Field: field + ".interval_minutes", Reason: "must be positive"}
		case hasDaily:
			if _, _, err := ticks.ParseTimeOfDay(task.At); err != nil {
				return &domain.ConfigError{Field: field + ".time", Reason: err.Error()}
			}
		}
	}

	return nil
}
