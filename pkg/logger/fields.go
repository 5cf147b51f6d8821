package logger

// Shared log field names, so queries over structured logs stay consistent.
const (
	// FieldTraceID request trace id
	FieldTraceID = "traceId"

	// FieldUID user id
	FieldUID = "uid"

	// FieldPath logical item path
	FieldPath = "path"

	// FieldName item name
	FieldName = "name"

	// FieldDuration elapsed time
	FieldDuration = "duration"

	// FieldMethod handler or service method name
	FieldMethod = "method"

	// FieldSize file size in bytes
	FieldSize = "size"

	// FieldStorageKey object store key
	FieldStorageKey = "storageKey"

	// FieldResource changed resource kind (files / folders)
	FieldResource = "resource"

	// FieldEvent change event kind (create / update / delete)
	FieldEvent = "event"
)
