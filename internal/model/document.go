package model

import "time"

// DocumentID identifies an uploaded study document. It is the sanitized
// filename under the uploads directory.
type DocumentID string

// Document is one unit of uploaded educational material. The raw bytes live
// in the document store; extracted text is derived during index build and
// not retained afterwards.
type Document struct {
	ID         DocumentID `json:"id"`
	UploadedAt time.Time  `json:"uploaded_at"`
}
