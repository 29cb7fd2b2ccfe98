package models

// BulkAction - массовое действие над выбранными элементами контента
type BulkAction string

const (
	ActionDelete    BulkAction = "delete"
	ActionPublish   BulkAction = "publish"
	ActionArchive   BulkAction = "archive"
	ActionFeature   BulkAction = "feature"
	ActionUnfeature BulkAction = "unfeature"
)

// BulkFailure - исход одного элемента батча, к которому действие применить не удалось
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult - агрегированный результат батча. Элементы, уже находившиеся
// в целевом состоянии, считаются успешными (идемпотентный no-op).
type BulkResult struct {
	SucceededIDs []string      `json:"succeededIds"`
	FailedIDs    []BulkFailure `json:"failedIds"`
}
