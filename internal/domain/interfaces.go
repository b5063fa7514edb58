package domain

import "context"

// ControlPlane is the Jellyfin configuration API surface the reconcilers
// operate against. SystemInfo, Libraries and Tasks are read-only; the rest
// mutate server state and pass through the execution-mode gate.
type ControlPlane interface {
	SystemInfo(ctx context.Context) (ServerInfo, error)

	Libraries(ctx context.Context) ([]RemoteLibrary, error)
	CreateLibrary(ctx context.Context, name string, category Category, folder string) (RemoteLibrary, error)
	UpdateLibraryOptions(ctx context.Context, libraryID string, opts LibraryOptions) error

	Tasks(ctx context.Context) ([]RemoteTask, error)
	UpdateTaskTriggers(ctx context.Context, taskID string, triggers []TaskTrigger) error
}

// TaskTrigger is one schedule rule attached to a scheduled task
type TaskTrigger struct {
	Type           string `json:"Type"`
	IntervalTicks  int64  `json:"IntervalTicks,omitempty"`
	TimeOfDayTicks int64  `json:"TimeOfDayTicks,omitempty"`
}

// Trigger type names as Jellyfin expects them
const (
	TriggerTypeInterval = "IntervalTrigger"
	TriggerTypeDaily    = "DailyTrigger"
)

// LibraryOptions is the LibraryOptions payload applied to a library.
// Field names follow the Jellyfin API.
type LibraryOptions struct {
	EnableRealtimeMonitor                 bool          `json:"EnableRealtimeMonitor"`
	PreferredMetadataLanguage             string        `json:"PreferredMetadataLanguage,omitempty"`
	MetadataCountryCode                   string        `json:"MetadataCountryCode,omitempty"`
	EnableEmbeddedTitles                  bool          `json:"EnableEmbeddedTitles"`
	AutomaticallyAddToCollection          bool          `json:"AutomaticallyAddToCollection"`
	SaveLocalMetadata                     bool          `json:"SaveLocalMetadata"`
	ReplaceExistingImages                 bool          `json:"ReplaceExistingImages"`
	EnableChapterImageExtraction          bool          `json:"EnableChapterImageExtraction"`
	ExtractChapterImagesDuringLibraryScan bool          `json:"ExtractChapterImagesDuringLibraryScan"`
	EnableTrickplayImageExtraction        bool          `json:"EnableTrickplayImageExtraction"`
	TypeOptions                           []TypeOptions `json:"TypeOptions,omitempty"`
}

// TypeOptions carries the provider lists for one item type within a library
type TypeOptions struct {
	Type             string   `json:"Type"`
	MetadataFetchers []string `json:"MetadataFetchers"`
	ImageFetchers    []string `json:"ImageFetchers"`
	MetadataSavers   []string `json:"MetadataSavers"`
}
