package jellyfin

import "github.com/mmcdole/jellyctl/internal/domain"

// SystemInfoDTO represents the /System/Info response
type SystemInfoDTO struct {
	ServerName      string `json:"ServerName"`
	Version         string `json:"Version"`
	ProductName     string `json:"ProductName"`
	OperatingSystem string `json:"OperatingSystem"`
	ID              string `json:"Id"`
}

// VirtualFolderDTO represents one entry of /Library/VirtualFolders
type VirtualFolderDTO struct {
	Name           string   `json:"Name"`
	ItemID         string   `json:"ItemId"`
	CollectionType string   `json:"CollectionType,omitempty"`
	Locations      []string `json:"Locations,omitempty"`
}

// ScheduledTaskDTO represents one entry of /ScheduledTasks. Key is the
// stable identifier; older servers only report Id.
type ScheduledTaskDTO struct {
	Name        string `json:"Name"`
	Key         string `json:"Key,omitempty"`
	ID          string `json:"Id,omitempty"`
	Category    string `json:"Category,omitempty"`
	Description string `json:"Description,omitempty"`
}

// UpdateLibraryOptionsRequest is the body of
// POST /Library/VirtualFolders/LibraryOptions
type UpdateLibraryOptionsRequest struct {
	ID             string                `json:"Id"`
	LibraryOptions domain.LibraryOptions `json:"LibraryOptions"`
}

// MapLibraries converts virtual-folder DTOs to domain libraries
func MapLibraries(folders []VirtualFolderDTO) []domain.RemoteLibrary {
	libs := make([]domain.RemoteLibrary, 0, len(folders))
	for _, f := range folders {
		libs = append(libs, domain.RemoteLibrary{
			ID:   f.ItemID,
			Name: f.Name,
		})
	}
	return libs
}

// MapTasks converts scheduled-task DTOs to domain tasks
func MapTasks(tasks []ScheduledTaskDTO) []domain.RemoteTask {
	out := make([]domain.RemoteTask, 0, len(tasks))
	for _, t := range tasks {
		id := t.Key
		if id == "" {
			id = t.ID
		}
		out = append(out, domain.RemoteTask{
			ID:   id,
			Name: t.Name,
		})
	}
	return out
}
