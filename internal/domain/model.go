package domain

// ModelVersion describes one published on-device model build.
type ModelVersion struct {
	ID                    string       `json:"id"`
	Type                  AnalysisType `json:"type"`
	Name                  string       `json:"name"`
	Version               string       `json:"version"`
	Description           string       `json:"description,omitempty"`
	ReleaseDate           string       `json:"releaseDate,omitempty"`
	DownloadURL           string       `json:"downloadUrl,omitempty"`
	FileSize              int64        `json:"fileSize,omitempty"`
	RequiredMinAppVersion string       `json:"requiredMinAppVersion,omitempty"`
	ChangeLog             []string     `json:"changeLog,omitempty"`
}

// ModelUpdateCheck is the answer to "is a newer model build available".
type ModelUpdateCheck struct {
	HasUpdate             bool     `json:"hasUpdate"`
	CurrentVersion        string   `json:"currentVersion"`
	LatestVersion         string   `json:"latestVersion"`
	UpdateURL             string   `json:"updateUrl,omitempty"`
	FileSize              int64    `json:"fileSize,omitempty"`
	RequiredMinAppVersion string   `json:"requiredMinAppVersion,omitempty"`
	ChangeLog             []string `json:"changeLog,omitempty"`
	IsUpdateRequired      bool     `json:"isUpdateRequired,omitempty"`
}
