package model

// BatchItem is one transcript submitted through POST /evaluate/batch,
// with the duration already resolved against the configured default.
type BatchItem struct {
	ID          string `json:"id"`
	Transcript  string `json:"transcript"`
	DurationSec int    `json:"duration"`
}

// BatchResult pairs an item id with either its report or the error message.
type BatchResult struct {
	ID     string  `json:"id"`
	Report *Report `json:"report,omitempty"`
	Error  string  `json:"error,omitempty"`
}
