package model

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type DocumentID string

// NewDocumentID generates a new unique DocumentID
func NewDocumentID() DocumentID {
	return DocumentID(uuid.New().String())
}

// Fragment is a chunk of a source document with its pre-computed
// embedding vector. Immutable once ingested.
type Fragment struct {
	RawText   string             `json:"rawText"`
	Embedding firestore.Vector32 `json:"embedding"`
}

// Document is a read-only reference corpus for chats. Metadata lives in
// Firestore; the fragment array can be large, so it is stored as a JSON
// blob in Cloud Storage instead.
type Document struct {
	ID            DocumentID `json:"id"`
	Title         string     `json:"title"`
	OwnerID       UserID     `json:"ownerId"`
	FragmentCount int        `json:"fragmentCount"`
	CreatedAt     time.Time  `json:"createdAt"`

	// Loaded from Cloud Storage, not persisted with the metadata record
	Fragments []Fragment `json:"-" firestore:"-"`
}
