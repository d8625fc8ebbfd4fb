package document

import (
	"context"
	"encoding/json"
	"io"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/adapter"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

func blobKey(id model.DocumentID) string {
	return "documents/" + string(id) + ".json"
}

// Load retrieves document metadata from the repository and its fragment
// array from Cloud Storage.
func Load(ctx context.Context, repo repository.Repository, storage adapter.Storage, id model.DocumentID) (*model.Document, error) {
	doc, err := repo.GetDocument(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get document from repository")
	}

	reader, err := storage.Get(ctx, blobKey(id))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get fragments from storage", goerr.T(model.ErrTagInternal))
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read fragment data", goerr.T(model.ErrTagInternal))
	}

	var fragments []model.Fragment
	if err := json.Unmarshal(data, &fragments); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal fragments", goerr.T(model.ErrTagInternal))
	}

	doc.Fragments = fragments
	return doc, nil
}

// Save persists document metadata to the repository and the fragment
// array to Cloud Storage.
func Save(ctx context.Context, repo repository.Repository, storage adapter.Storage, doc *model.Document) error {
	doc.FragmentCount = len(doc.Fragments)

	writer, err := storage.Put(ctx, blobKey(doc.ID))
	if err != nil {
		return goerr.Wrap(err, "failed to create storage writer", goerr.T(model.ErrTagInternal))
	}

	data, err := json.Marshal(doc.Fragments)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal fragments")
	}

	if _, err := writer.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write fragments to storage", goerr.T(model.ErrTagInternal))
	}

	if err := writer.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage writer", goerr.T(model.ErrTagInternal))
	}

	if err := repo.PutDocument(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put document to repository")
	}

	return nil
}
