package image

import "image"

// Upload is one inbound image submitted for analysis. It lives for the
// duration of a single request and is never persisted.
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Decoded holds the decoded handle produced by validation. The normalizer
// reuses it so the payload is decoded exactly once per request.
type Decoded struct {
	Image  image.Image
	Format string
	Width  int
	Height int
}

// Normalized is the transmission-ready payload derived from an Upload.
type Normalized struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
