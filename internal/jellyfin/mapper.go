package jellyfin

import (
	"fmt"

	"github.com/mmcdole/jellyctl/internal/domain"
)

// collectionTypes maps a library category to the collectionType query
// parameter used at creation time.
var collectionTypes = map[domain.Category]string{
	domain.CategoryMovie:  "movies",
	domain.CategorySeries: "tvshows",
	domain.CategoryAudio:  "music",
	domain.CategoryBook:   "books",
	domain.CategoryMixed:  "mixed",
}

// itemTypes maps a library category to the item type names used as
// TypeOptions slots. Mixed libraries carry both movie and series slots;
// the remote type names differ per category even though the spec fields
// are category-agnostic.
var itemTypes = map[domain.Category][]string{
	domain.CategoryMovie:  {"Movie"},
	domain.CategorySeries: {"Series"},
	domain.CategoryAudio:  {"Audio"},
	domain.CategoryBook:   {"Book"},
	domain.CategoryMixed:  {"Movie", "Series"},
}

// CollectionType returns the collectionType parameter for a category
func CollectionType(category domain.Category) string {
	if ct, ok := collectionTypes[category]; ok {
		return ct
	}
	return "movies"
}

// BuildLibraryOptions maps a LibrarySpec to the LibraryOptions payload.
// Pure and total: every spec produces exactly one payload. Fields with no
// remote equivalent are omitted and returned as warnings instead.
func BuildLibraryOptions(spec domain.LibrarySpec) (domain.LibraryOptions, []string) {
	adv := spec.Advanced

	opts := domain.LibraryOptions{
		EnableRealtimeMonitor:                 spec.RealtimeMonitor,
		PreferredMetadataLanguage:             adv.PreferredLanguage,
		MetadataCountryCode:                   adv.CountryCode,
		EnableEmbeddedTitles:                  adv.PreferEmbeddedTitles,
		AutomaticallyAddToCollection:          adv.AutoRefreshMetadata,
		SaveLocalMetadata:                     adv.SaveArtworkIntoFolders,
		ReplaceExistingImages:                 adv.ReplaceExistingImages,
		EnableChapterImageExtraction:          adv.ChapterImages,
		ExtractChapterImagesDuringLibraryScan: adv.ChapterImagesDuringScan,
		EnableTrickplayImageExtraction:        adv.Trickplay,
	}

	types := itemTypes[spec.Category]
	if len(types) == 0 {
		types = itemTypes[domain.CategoryMovie]
	}
	for _, typeName := range types {
		opts.TypeOptions = append(opts.TypeOptions, domain.TypeOptions{
			Type:             typeName,
			MetadataFetchers: copyList(spec.MetadataDownloaders),
			ImageFetchers:    copyList(spec.ImageFetchers),
			MetadataSavers:   copyList(spec.MetadataSavers),
		})
	}

	var warnings []string
	if adv.SkipImagesIfNFOExists {
		warnings = append(warnings, fmt.Sprintf(
			"library %q: skip_images_if_nfo_exists has no API equivalent and must be set manually", spec.Name))
	}

	return opts, warnings
}

// copyList keeps the payload independent of the spec's backing arrays and
// guarantees empty (not null) JSON arrays.
func copyList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
