package domain

// RawDocument represents opaque manuscript bytes read from disk.
// It is the reader's output before normalisation.
type RawDocument struct {
	// URI is the original location (file path).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains reader-specific key-value pairs.
	Metadata map[string]any
}
