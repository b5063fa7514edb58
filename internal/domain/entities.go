package domain

// Category identifies the kind of content a library holds
type Category string

const (
	CategoryMovie  Category = "movie"
	CategorySeries Category = "series"
	CategoryAudio  Category = "audio"
	CategoryBook   Category = "book"
	CategoryMixed  Category = "mixed"
)

// Valid reports whether the category is one of the known values
func (c Category) Valid() bool {
	switch c {
	case CategoryMovie, CategorySeries, CategoryAudio, CategoryBook, CategoryMixed:
		return true
	}
	return false
}

// TaskKey identifies a scheduled task in the desired-state document
type TaskKey string

const (
	TaskScanMediaLibrary   TaskKey = "scan_media_library"
	TaskChapterImages      TaskKey = "extract_chapter_images"
	TaskTrickplayImages    TaskKey = "trickplay_image_extraction"
	TaskIntroSkipDetection TaskKey = "generate_intro_skip_data"
)

// Valid reports whether the task key is one of the known values
func (k TaskKey) Valid() bool {
	switch k {
	case TaskScanMediaLibrary, TaskChapterImages, TaskTrickplayImages, TaskIntroSkipDetection:
		return true
	}
	return false
}

// DesiredState is the full declarative configuration for one run.
// It is loaded and validated once, then treated as read-only.
type DesiredState struct {
	Server    ServerSpec
	Libraries []LibrarySpec
	Tasks     []TaskSchedule // document order preserved
}

// ServerSpec identifies the target Jellyfin server
type ServerSpec struct {
	URL    string
	APIKey string
}

// LibrarySpec describes one desired library. Name is the natural key:
// the server issues IDs on creation, so existence is tested by name.
type LibrarySpec struct {
	Name     string
	Category Category

	// Folders backing the library. Only the first can be attached at
	// creation time; the rest are surfaced as manual-addition warnings.
	Folders []string

	RealtimeMonitor bool

	// Provider lists, in priority order
	MetadataDownloaders []string
	ImageFetchers       []string
	MetadataSavers      []string

	Advanced AdvancedOptions
}

// AdvancedOptions mirrors the per-library advanced settings page
type AdvancedOptions struct {
	PreferredLanguage       string
	CountryCode             string
	PreferEmbeddedTitles    bool
	AutoRefreshMetadata     bool
	SaveArtworkIntoFolders  bool
	ReplaceExistingImages   bool
	ChapterImages           bool
	ChapterImagesDuringScan bool
	Trickplay               bool

	// SkipImagesIfNFOExists has no LibraryOptions equivalent; it is
	// never sent and always reported as a warning
	SkipImagesIfNFOExists bool
}

// TaskSchedule describes the desired trigger for one scheduled task.
// Exactly one of IntervalMinutes / At is set (validated at load time).
type TaskSchedule struct {
	Key             TaskKey
	Enabled         bool
	IntervalMinutes int
	At              string // "HH:MM", daily trigger
	LibraryScope    string // optional: restrict a daily task to one library
}

// IsInterval reports whether the schedule is interval-based
func (t TaskSchedule) IsInterval() bool {
	return t.IntervalMinutes > 0
}

// RemoteLibrary is a library as reported by the server
type RemoteLibrary struct {
	ID   string
	Name string
}

// RemoteTask is a scheduled task as reported by the server
type RemoteTask struct {
	ID   string
	Name string
}

// ServerInfo is the connectivity-check response
type ServerInfo struct {
	Name    string
	Version string
	ID      string
}
