package parser

// Request carries everything needed to extract one resume.
type Request struct {
	UserID string

	// Inline resume text. Takes precedence over File when it contains
	// anything beyond whitespace.
	Text string

	// Uploaded file, optional.
	File     []byte
	MimeType string
	FileName string

	// Extra fields the caller wants extracted in addition to the schema.
	CustomFields []string

	// Caller-supplied schema block replacing the default one.
	CustomSchema string
}
