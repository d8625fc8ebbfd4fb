package query

import (
	"context"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/adapter"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/repository"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/broadcast"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/chat"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/document"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// UseCase runs the retrieval-augmented answer pipeline for one query
type UseCase struct {
	repo    repository.Repository
	chats   *chat.UseCase
	storage adapter.Storage
	gemini  adapter.Gemini
	hub     *broadcast.Hub
}

// New creates a new query UseCase instance
func New(
	repo repository.Repository,
	chats *chat.UseCase,
	storage adapter.Storage,
	gemini adapter.Gemini,
	hub *broadcast.Hub,
) *UseCase {
	return &UseCase{
		repo:    repo,
		chats:   chats,
		storage: storage,
		gemini:  gemini,
		hub:     hub,
	}
}

// Input contains parameters for answering one query
type Input struct {
	UserID model.UserID
	ChatID model.ChatID
	Query  string
}

// Answer runs the full pipeline: authorize, retrieve fragments, rank
// them against the query embedding, assemble the grounding prompt,
// stream the completion and persist the finished turn. The returned
// messages are the streamed increments in arrival order.
//
// Identity and ownership are checked before any external service is
// called. The grounding prompt is a transport artifact: the persisted
// user turn is the raw question.
func (u *UseCase) Answer(ctx context.Context, input Input) ([]model.Message, error) {
	if input.Query == "" {
		return nil, goerr.New("query is empty", goerr.T(model.ErrTagBadRequest))
	}

	if _, err := u.repo.GetUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	target, err := u.chats.Get(ctx, input.UserID, input.ChatID)
	if err != nil {
		return nil, err
	}

	doc, err := document.Load(ctx, u.repo, u.storage, target.DocumentID)
	if err != nil {
		return nil, err
	}

	queryVec, err := u.gemini.Embedding(ctx, input.Query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query", goerr.T(model.ErrTagInternal))
	}

	scored, err := Rank(queryVec, doc.Fragments)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(topTexts(scored, topFragments), input.Query, responseLanguage)

	history := toContents(target.Messages)
	history = append(history, genai.NewContentFromText(prompt, genai.RoleUser))

	increments, err := u.consume(ctx, target.ID, u.gemini.StreamCompletion(ctx, history))
	if err != nil {
		return nil, err
	}

	turn := []model.Message{
		{Role: model.RoleUser, Content: input.Query},
		coalesce(increments),
	}
	if err := u.chats.AppendTurn(ctx, target.ID, turn); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("answered query",
		"chat_id", target.ID,
		"document_id", doc.ID,
		"fragments", len(doc.Fragments),
		"increments", len(increments),
	)

	return increments, nil
}

// toContents converts persisted chat messages to the completion service
// history format.
func toContents(messages []model.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages)+1)
	for _, msg := range messages {
		var role genai.Role = genai.RoleUser
		if msg.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}
