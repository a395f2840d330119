package filestore

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket string

	// Key is the full object path within the bucket (e.g. "exports/171234.jsonl").
	Key string

	// Size is the byte size of the object.
	Size int64

	ContentType string

	// ETag is the object's entity tag, as returned by the backend.
	ETag string
}
