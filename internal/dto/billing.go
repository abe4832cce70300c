package dto

// BulkBillResult reports the outcome of a bulk billing run.
type BulkBillResult struct {
	CreatedCount int    `json:"created_count"`
	SkippedCount int    `json:"skipped_count"`
	Message      string `json:"message,omitempty"`
}

// StudentImportResult reports how many rows of an import were inserted.
type StudentImportResult struct {
	CreatedCount int      `json:"created_count"`
	SkippedCount int      `json:"skipped_count"`
	Skipped      []string `json:"skipped,omitempty"`
}
