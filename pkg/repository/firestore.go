package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionUsers     = "users"
	collectionChats     = "chats"
	collectionDocuments = "documents"
)

// Firestore implements Repository interface using Cloud Firestore
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying Firestore client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) PutUser(ctx context.Context, user *model.User) error {
	if _, err := r.client.Collection(collectionUsers).Doc(string(user.ID)).Set(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.V("user_id", user.ID), goerr.T(model.ErrTagInternal))
	}
	return nil
}

func (r *Firestore) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	snap, err := r.client.Collection(collectionUsers).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrUserNotFound, "no such user", goerr.V("user_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("user_id", id), goerr.T(model.ErrTagInternal))
	}

	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("user_id", id), goerr.T(model.ErrTagInternal))
	}
	return &user, nil
}

func (r *Firestore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.client.Collection(collectionUsers).Where("Email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by email", goerr.T(model.ErrTagInternal))
	}
	if len(snaps) == 0 {
		return nil, goerr.Wrap(model.ErrUserNotFound, "no user with email", goerr.V("email", email))
	}

	var user model.User
	if err := snaps[0].DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.T(model.ErrTagInternal))
	}
	return &user, nil
}

func (r *Firestore) DeleteUser(ctx context.Context, id model.UserID) error {
	if _, err := r.client.Collection(collectionUsers).Doc(string(id)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("user_id", id), goerr.T(model.ErrTagInternal))
	}
	return nil
}

func (r *Firestore) PutChat(ctx context.Context, chat *model.Chat) error {
	if _, err := r.client.Collection(collectionChats).Doc(string(chat.ID)).Set(ctx, chat); err != nil {
		return goerr.Wrap(err, "failed to put chat", goerr.V("chat_id", chat.ID), goerr.T(model.ErrTagInternal))
	}
	return nil
}

func (r *Firestore) GetChat(ctx context.Context, id model.ChatID) (*model.Chat, error) {
	snap, err := r.client.Collection(collectionChats).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrChatNotFound, "no such chat", goerr.V("chat_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get chat", goerr.V("chat_id", id), goerr.T(model.ErrTagInternal))
	}

	var chat model.Chat
	if err := snap.DataTo(&chat); err != nil {
		return nil, goerr.Wrap(err, "failed to decode chat", goerr.V("chat_id", id), goerr.T(model.ErrTagInternal))
	}
	return &chat, nil
}

func (r *Firestore) ListChatsByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Chat, error) {
	iter := r.client.Collection(collectionChats).
		Where("OwnerIDs", "array-contains", string(ownerID)).
		Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list chats", goerr.V("owner_id", ownerID), goerr.T(model.ErrTagInternal))
	}

	chats := make([]*model.Chat, 0, len(snaps))
	for _, snap := range snaps {
		var chat model.Chat
		if err := snap.DataTo(&chat); err != nil {
			return nil, goerr.Wrap(err, "failed to decode chat", goerr.T(model.ErrTagInternal))
		}
		chats = append(chats, &chat)
	}
	return chats, nil
}

func (r *Firestore) AppendMessages(ctx context.Context, id model.ChatID, messages []model.Message) error {
	ref := r.client.Collection(collectionChats).Doc(string(id))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrChatNotFound, "no such chat", goerr.V("chat_id", id))
			}
			return err
		}

		var chat model.Chat
		if err := snap.DataTo(&chat); err != nil {
			return err
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "Messages", Value: append(chat.Messages, messages...)},
			{Path: "UpdatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if goerr.HasTag(err, model.ErrTagNotFound) {
			return err
		}
		return goerr.Wrap(err, "failed to append messages", goerr.V("chat_id", id), goerr.T(model.ErrTagInternal))
	}
	return nil
}

func (r *Firestore) PutDocument(ctx context.Context, doc *model.Document) error {
	if _, err := r.client.Collection(collectionDocuments).Doc(string(doc.ID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put document", goerr.V("document_id", doc.ID), goerr.T(model.ErrTagInternal))
	}
	return nil
}

func (r *Firestore) GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	snap, err := r.client.Collection(collectionDocuments).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrDocumentNotFound, "no such document", goerr.V("document_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("document_id", id), goerr.T(model.ErrTagInternal))
	}

	var doc model.Document
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document", goerr.V("document_id", id), goerr.T(model.ErrTagInternal))
	}
	return &doc, nil
}
