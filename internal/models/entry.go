package models

// Record is the raw inbound payload for POST /api/dataset.
// Only SourceText is required; everything else defaults during normalization.
type Record struct {
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	Timestamp      string `json:"timestamp"`
	Language       string `json:"language"`
	Model          string `json:"model"`
}

// Entry is the canonical, normalized form of a record. It is exactly the
// shape persisted to the dataset log, one JSON object per line.
type Entry struct {
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	Timestamp      string `json:"timestamp"`
	Language       string `json:"language"`
	Model          string `json:"model"`
}
