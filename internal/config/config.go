// Package config loads and validates the desired-state document. All
// downstream components operate on the typed domain.DesiredState; raw
// document handling stops at this boundary.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mmcdole/jellyctl/internal/domain"
)

// DefaultPath is the default desired-state document location
const DefaultPath = "jellyfin.config.json"

// apiKeyPlaceholder is the value shipped in the example document; it is
// treated the same as an unset key.
const apiKeyPlaceholder = "YOUR_API_KEY_HERE"

// document mirrors the on-disk JSON shape
type document struct {
	Server    serverDoc          `mapstructure:"server"`
	Libraries []libraryDoc       `mapstructure:"libraries"`
	Tasks     map[string]taskDoc `mapstructure:"scheduled_tasks"`
}

type serverDoc struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type libraryDoc struct {
	Name                string      `mapstructure:"name"`
	Category            string      `mapstructure:"category"`
	Folders             []string    `mapstructure:"folders"`
	RealtimeMonitor     bool        `mapstructure:"enable_realtime_monitoring"`
	MetadataDownloaders []string    `mapstructure:"metadata_downloaders"`
	ImageFetchers       []string    `mapstructure:"image_fetchers"`
	MetadataSavers      []string    `mapstructure:"metadata_savers"`
	Advanced            advancedDoc `mapstructure:"advanced"`
}

type advancedDoc struct {
	PreferredLanguage       string `mapstructure:"preferred_language"`
	Country                 string `mapstructure:"country"`
	PreferEmbeddedTitles    bool   `mapstructure:"prefer_embedded_titles"`
	AutoRefreshMetadata     bool   `mapstructure:"automatically_refresh_metadata"`
	SaveArtworkIntoFolders  bool   `mapstructure:"save_artwork_into_media_folders"`
	ReplaceExistingImages   bool   `mapstructure:"replace_existing_images"`
	ChapterImages           bool   `mapstructure:"enable_chapter_image_extraction"`
	ChapterImagesDuringScan bool   `mapstructure:"extract_chapter_images_during_scan"`
	Trickplay               bool   `mapstructure:"enable_trickplay_extraction"`
	SkipImagesIfNFOExists   bool   `mapstructure:"skip_images_if_nfo_exists"`
}

type taskDoc struct {
	Enabled         *bool  `mapstructure:"enabled"` // nil means enabled
	IntervalMinutes int    `mapstructure:"interval_minutes"`
	Schedule        string `mapstructure:"schedule"` // "daily"
	Time            string `mapstructure:"time"`     // "HH:MM"
	Library         string `mapstructure:"library"`
}

// taskKeyOrder fixes the report order for task schedules: the document
// holds them in a map, so document order does not exist.
var taskKeyOrder = []domain.TaskKey{
	domain.TaskScanMediaLibrary,
	domain.TaskChapterImages,
	domain.TaskTrickplayImages,
	domain.TaskIntroSkipDetection,
}

// Load reads, converts and validates the desired-state document at path.
// The JELLYCTL_API_KEY environment variable overrides server.api_key.
func Load(path string) (*domain.DesiredState, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.ConfigError{Reason: fmt.Sprintf("config file not found: %s", path)}
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var doc document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// Unmarshal drops empty sub-maps, so a task configured as an empty
	// object would vanish before validation can reject it. Re-enumerate
	// the keys from the raw document.
	if raw := v.GetStringMap("scheduled_tasks"); len(raw) > 0 {
		if doc.Tasks == nil {
			doc.Tasks = make(map[string]taskDoc, len(raw))
		}
		for key := range raw {
			if _, ok := doc.Tasks[key]; !ok {
				doc.Tasks[key] = taskDoc{}
			}
		}
	}

	if key := os.Getenv("JELLYCTL_API_KEY"); key != "" {
		doc.Server.APIKey = key
	}
	if doc.Server.APIKey == apiKeyPlaceholder {
		doc.Server.APIKey = ""
	}

	state, err := convert(doc)
	if err != nil {
		return nil, err
	}
	if err := Validate(state); err != nil {
		return nil, err
	}
	return state, nil
}

func convert(doc document) (*domain.DesiredState, error) {
	state := &domain.DesiredState{
		Server: domain.ServerSpec{
			URL:    strings.TrimRight(doc.Server.URL, "/"),
			APIKey: doc.Server.APIKey,
		},
	}

	for _, lib := range doc.Libraries {
		state.Libraries = append(state.Libraries, domain.LibrarySpec{
			Name:                lib.Name,
			Category:            domain.Category(lib.Category),
			Folders:             lib.Folders,
			RealtimeMonitor:     lib.RealtimeMonitor,
			MetadataDownloaders: lib.MetadataDownloaders,
			ImageFetchers:       lib.ImageFetchers,
			MetadataSavers:      lib.MetadataSavers,
			Advanced: domain.AdvancedOptions{
				PreferredLanguage:       lib.Advanced.PreferredLanguage,
				CountryCode:             lib.Advanced.Country,
				PreferEmbeddedTitles:    lib.Advanced.PreferEmbeddedTitles,
				AutoRefreshMetadata:     lib.Advanced.AutoRefreshMetadata,
				SaveArtworkIntoFolders:  lib.Advanced.SaveArtworkIntoFolders,
				ReplaceExistingImages:   lib.Advanced.ReplaceExistingImages,
				ChapterImages:           lib.Advanced.ChapterImages,
				ChapterImagesDuringScan: lib.Advanced.ChapterImagesDuringScan,
				Trickplay:               lib.Advanced.Trickplay,
				SkipImagesIfNFOExists:   lib.Advanced.SkipImagesIfNFOExists,
			},
		})
	}

	// Emit task schedules in the fixed key order, unknown keys last so
	// validation can name them.
	seen := make(map[string]bool, len(doc.Tasks))
	for _, key := range taskKeyOrder {
		t, ok := doc.Tasks[string(key)]
		if !ok {
			continue
		}
		seen[string(key)] = true
		state.Tasks = append(state.Tasks, convertTask(key, t))
	}
	for key, t := range doc.Tasks {
		if !seen[key] {
			state.Tasks = append(state.Tasks, convertTask(domain.TaskKey(key), t))
		}
	}

	return state, nil
}

func convertTask(key domain.TaskKey, t taskDoc) domain.TaskSchedule {
	enabled := true
	if t.Enabled != nil {
		enabled = *t.Enabled
	}
	schedule := domain.TaskSchedule{
		Key:             key,
		Enabled:         enabled,
		IntervalMinutes: t.IntervalMinutes,
		LibraryScope:    t.Library,
	}
	if t.Schedule == "daily" {
		schedule.At = t.Time
		if schedule.At == "" {
			schedule.At = "03:00"
		}
	}
	return schedule
}
