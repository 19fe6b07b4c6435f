package domain

// AnalysisType distinguishes the two supported classification pipelines.
type AnalysisType string

const (
	AnalysisParasite AnalysisType = "Parasite"
	AnalysisMNIST    AnalysisType = "MNIST"
)

// ParasiteResult is one classifier hit for a parasite analysis.
type ParasiteResult struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// DigitResult is one classifier hit for an MNIST analysis.
type DigitResult struct {
	Value      int     `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Analysis is a stored analysis record as returned by the history and
// admin listing endpoints.
type Analysis struct {
	ID                string           `json:"id"`
	AnalysisType      AnalysisType     `json:"analysisType"`
	ImageURL          string           `json:"imageUrl"`
	ThumbnailURL      string           `json:"thumbnailUrl,omitempty"`
	ParasiteResults   []ParasiteResult `json:"parasiteResults,omitempty"`
	DigitResults      []DigitResult    `json:"digitResults,omitempty"`
	ProcessingTimeMs  int              `json:"processingTimeMs,omitempty"`
	ProcessedOnMobile bool             `json:"processedOnMobile,omitempty"`
	Location          string           `json:"location,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	ModelName         string           `json:"modelName,omitempty"`
	ModelVersion      string           `json:"modelVersion,omitempty"`
	DeviceInfo        string           `json:"deviceInfo,omitempty"`
	UserID            string           `json:"userId,omitempty"`
	CreatedAt         string           `json:"createdAt"`
}

// BatchAnalysisItem is one locally processed analysis in a batch upload.
type BatchAnalysisItem struct {
	LocalID          string           `json:"localId"`
	Type             AnalysisType     `json:"type"`
	ImageBase64      string           `json:"imageBase64"`
	ParasiteResults  []ParasiteResult `json:"parasiteResults,omitempty"`
	DigitResults     []DigitResult    `json:"digitResults,omitempty"`
	ProcessingTimeMs int              `json:"processingTimeMs"`
	Location         string           `json:"location,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	ModelName        string           `json:"modelName"`
	ModelVersion     string           `json:"modelVersion"`
	DeviceInfo       string           `json:"deviceInfo"`
	CreatedAt        string           `json:"createdAt"`
}

// BatchUploadRequest is the payload for POST /api/analysis/batch-upload.
type BatchUploadRequest struct {
	Analyses []BatchAnalysisItem `json:"analyses"`
}

// BatchItemResult reports the server outcome for one batch item.
type BatchItemResult struct {
	LocalID  string `json:"localId"`
	ServerID string `json:"serverId,omitempty"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// BatchUploadResult summarises a batch upload.
type BatchUploadResult struct {
	Results      []BatchItemResult `json:"results"`
	SuccessCount int               `json:"successCount"`
	ErrorCount   int               `json:"errorCount"`
	TotalCount   int               `json:"totalCount"`
}

// AnalysisStats is the admin dashboard aggregate from /api/analysis/admin/stats.
type AnalysisStats struct {
	TotalAnalyses int                  `json:"totalAnalyses"`
	CountsByType  map[AnalysisType]int `json:"countsByType"`
	CountsByDate  map[string]int       `json:"countsByDate,omitempty"`
	MobileCount   int                  `json:"mobileCount,omitempty"`
}
