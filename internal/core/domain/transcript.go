package domain

// Transcript is a generated download document.
type Transcript struct {
	// Name is the suggested file name.
	Name string

	// Content is the document body.
	Content []byte
}
