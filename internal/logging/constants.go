package logging

// Field names shared by every component so ledger logs can be filtered
// the same way regardless of which backend produced them.
const (
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldOperation     = "operation"
	FieldCount         = "count"
	FieldKey           = "key"
	FieldBackend       = "backend"
	FieldPattern       = "pattern"
	FieldFile          = "file_path"
	FieldMode          = "mode"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldIndex         = "index"
	FieldVersion       = "version"
	FieldBytes         = "bytes"
)
