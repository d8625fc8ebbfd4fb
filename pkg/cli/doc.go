package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/document"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// fragmentFile is the YAML import format for pre-embedded documents
type fragmentFile struct {
	Title     string `yaml:"title"`
	Fragments []struct {
		Text      string    `yaml:"text"`
		Embedding []float32 `yaml:"embedding"`
	} `yaml:"fragments"`
}

func docCommand() *cli.Command {
	return &cli.Command{
		Name:  "doc",
		Usage: "Manage ingested documents",
		Commands: []*cli.Command{
			docImportCommand(),
		},
	}
}

func docImportCommand() *cli.Command {
	var (
		cfg     config
		input   string
		ownerID model.UserID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to YAML file with fragment texts and embeddings",
			Destination: &input,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "owner",
			Aliases:     []string{"u"},
			Usage:       "User ID that owns the document",
			Destination: (*string)(&ownerID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "import",
		Usage: "Import a document with pre-computed fragment embeddings",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogger()

			data, err := os.ReadFile(input)
			if err != nil {
				return goerr.Wrap(err, "failed to read input file", goerr.V("path", input))
			}

			var file fragmentFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return goerr.Wrap(err, "failed to parse input file", goerr.V("path", input))
			}
			if len(file.Fragments) == 0 {
				return goerr.New("input file has no fragments", goerr.V("path", input))
			}

			dimension := len(file.Fragments[0].Embedding)
			fragments := make([]model.Fragment, 0, len(file.Fragments))
			for i, f := range file.Fragments {
				if len(f.Embedding) == 0 || len(f.Embedding) != dimension {
					return goerr.Wrap(model.ErrInvalidVector, "fragment embedding dimension mismatch",
						goerr.V("fragment", i), goerr.V("want", dimension), goerr.V("got", len(f.Embedding)))
				}
				fragments = append(fragments, model.Fragment{
					RawText:   f.Text,
					Embedding: firestore.Vector32(f.Embedding),
				})
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			doc := &model.Document{
				ID:        model.NewDocumentID(),
				Title:     file.Title,
				OwnerID:   ownerID,
				CreatedAt: time.Now(),
				Fragments: fragments,
			}

			if err := document.Save(ctx, repo, storage, doc); err != nil {
				return goerr.Wrap(err, "failed to save document")
			}

			fmt.Fprintf(c.Root().Writer, "Imported document %s (%d fragments)\n", doc.ID, len(fragments))
			return nil
		},
	}
}
