package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/server"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/broadcast"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/token"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/chat"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/document"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/query"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/user"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/genai"
)

type mockRepository struct {
	users     map[model.UserID]*model.User
	chats     map[model.ChatID]*model.Chat
	documents map[model.DocumentID]*model.Document
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:     make(map[model.UserID]*model.User),
		chats:     make(map[model.ChatID]*model.Chat),
		documents: make(map[model.DocumentID]*model.Document),
	}
}

func (m *mockRepository) PutUser(ctx context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockRepository) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrUserNotFound, "no such user", goerr.V("user_id", id))
	}
	return u, nil
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, goerr.Wrap(model.ErrUserNotFound, "no user with email", goerr.V("email", email))
}

func (m *mockRepository) DeleteUser(ctx context.Context, id model.UserID) error {
	delete(m.users, id)
	return nil
}

func (m *mockRepository) PutChat(ctx context.Context, c *model.Chat) error {
	m.chats[c.ID] = c
	return nil
}

func (m *mockRepository) GetChat(ctx context.Context, id model.ChatID) (*model.Chat, error) {
	c, ok := m.chats[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrChatNotFound, "no such chat", goerr.V("chat_id", id))
	}
	return c, nil
}

func (m *mockRepository) ListChatsByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Chat, error) {
	var chats []*model.Chat
	for _, c := range m.chats {
		if c.OwnedBy(ownerID) {
			chats = append(chats, c)
		}
	}
	return chats, nil
}

func (m *mockRepository) AppendMessages(ctx context.Context, id model.ChatID, messages []model.Message) error {
	c, ok := m.chats[id]
	if !ok {
		return goerr.Wrap(model.ErrChatNotFound, "no such chat", goerr.V("chat_id", id))
	}
	c.Messages = append(c.Messages, messages...)
	return nil
}

func (m *mockRepository) PutDocument(ctx context.Context, doc *model.Document) error {
	m.documents[doc.ID] = doc
	return nil
}

func (m *mockRepository) GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	doc, ok := m.documents[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrDocumentNotFound, "no such document", goerr.V("document_id", id))
	}
	return doc, nil
}

type mockStorage struct {
	data map[string][]byte
}

type mockWriteCloser struct {
	buf     *bytes.Buffer
	storage *mockStorage
	key     string
}

func (w *mockWriteCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *mockWriteCloser) Close() error {
	w.storage.data[w.key] = w.buf.Bytes()
	return nil
}

func (m *mockStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	return &mockWriteCloser{buf: &bytes.Buffer{}, storage: m, key: key}, nil
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, goerr.New("no such key", goerr.V("key", key))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type mockGemini struct {
	increments []string
}

func (m *mockGemini) Embedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (m *mockGemini) StreamCompletion(ctx context.Context, history []*genai.Content) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, inc := range m.increments {
			if !yield(inc, nil) {
				return
			}
		}
	}
}

type testAPI struct {
	router http.Handler
	repo   *mockRepository
	hub    *broadcast.Hub
}

func setup(t *testing.T) *testAPI {
	t.Helper()

	repo := newMockRepository()
	storage := &mockStorage{data: make(map[string][]byte)}
	gem := &mockGemini{increments: []string{"Hel", "lo"}}
	hub := broadcast.NewHub()

	issuer, err := token.NewIssuer("test-secret")
	gt.NoError(t, err)

	chats := chat.New(repo)
	users := user.New(repo, issuer)
	queryUC := query.New(repo, chats, storage, gem, hub)

	doc := &model.Document{
		ID:    "doc-1",
		Title: "Handbook",
		Fragments: []model.Fragment{
			{RawText: "fragment one", Embedding: firestore.Vector32{1, 0, 0}},
		},
	}
	gt.NoError(t, document.Save(context.Background(), repo, storage, doc))

	return &testAPI{
		router: server.New(users, chats, queryUC, hub, issuer).Router(),
		repo:   repo,
		hub:    hub,
	}
}

func (a *testAPI) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// signup registers an account and returns its bearer token and user ID
func (a *testAPI) signup(t *testing.T, email string) (string, model.UserID) {
	t.Helper()

	rec := a.do(http.MethodPost, "/api/users/signup", "", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "secret",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var out struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	gt.NotEqual(t, out.Token, "")
	return out.Token, out.User.ID
}

func TestHealth(t *testing.T) {
	api := setup(t)
	rec := api.do(http.MethodGet, "/health", "", nil)
	gt.Equal(t, rec.Code, http.StatusOK)
}

func TestSignupAndLogin(t *testing.T) {
	api := setup(t)
	api.signup(t, "ada@example.com")

	rec := api.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "secret",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	rec = api.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestAuthRequired(t *testing.T) {
	api := setup(t)

	rec := api.do(http.MethodGet, "/api/chats", "", nil)
	gt.Equal(t, rec.Code, http.StatusUnauthorized)

	rec = api.do(http.MethodGet, "/api/chats", "not-a-token", nil)
	gt.Equal(t, rec.Code, http.StatusUnauthorized)
}

func TestChatLifecycle(t *testing.T) {
	api := setup(t)
	bearer, _ := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodPost, "/api/chats", bearer, map[string]string{
		"documentId": "doc-1",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var created model.Chat
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	gt.Equal(t, created.Title, "Handbook")

	rec = api.do(http.MethodGet, "/api/chats", bearer, nil)
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.S(t, rec.Body.String()).Contains(string(created.ID))

	rec = api.do(http.MethodGet, "/api/chats/"+string(created.ID), bearer, nil)
	gt.Equal(t, rec.Code, http.StatusOK)
}

func TestGetChatNotOwned(t *testing.T) {
	api := setup(t)
	owner, _ := api.signup(t, "owner@example.com")
	intruder, _ := api.signup(t, "intruder@example.com")

	rec := api.do(http.MethodPost, "/api/chats", owner, map[string]string{
		"documentId": "doc-1",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var created model.Chat
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = api.do(http.MethodGet, "/api/chats/"+string(created.ID), intruder, nil)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestGetChatNotFound(t *testing.T) {
	api := setup(t)
	bearer, _ := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodGet, "/api/chats/missing", bearer, nil)
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestQuery(t *testing.T) {
	api := setup(t)
	bearer, _ := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodPost, "/api/chats", bearer, map[string]string{
		"documentId": "doc-1",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var created model.Chat
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = api.do(http.MethodPost, "/api/query", bearer, map[string]string{
		"query": "what is this about?",
		"id":    string(created.ID),
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var out struct {
		Response []model.Message `json:"response"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	gt.A(t, out.Response).Length(2)
	gt.Equal(t, out.Response[0].Content, "Hel")
	gt.Equal(t, out.Response[1].Content, "lo")

	// The turn was persisted as raw question plus coalesced answer
	stored := api.repo.chats[created.ID].Messages
	gt.A(t, stored).Length(2)
	gt.Equal(t, stored[0], model.Message{Role: model.RoleUser, Content: "what is this about?"})
	gt.Equal(t, stored[1], model.Message{Role: model.RoleAssistant, Content: "Hello"})
}

func TestQueryMissingChatID(t *testing.T) {
	api := setup(t)
	bearer, _ := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodPost, "/api/query", bearer, map[string]string{
		"query": "question",
	})
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestQueryUnknownChat(t *testing.T) {
	api := setup(t)
	bearer, _ := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodPost, "/api/query", bearer, map[string]string{
		"query": "question",
		"id":    "missing",
	})
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestEventStream(t *testing.T) {
	api := setup(t)
	bearer, _ := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodPost, "/api/chats", bearer, map[string]string{
		"documentId": "doc-1",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var created model.Chat
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events?chatId="+string(created.ID), nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+bearer)
	stream := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		api.router.ServeHTTP(stream, req)
	}()

	// Wait for the handler to subscribe before publishing
	for i := 0; i < 100 && api.hub.Len(created.ID) == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	gt.True(t, api.hub.Len(created.ID) > 0)

	api.hub.Publish(broadcast.Event{ChatID: created.ID, Role: model.RoleAssistant, Content: "Hel"})
	api.hub.Publish(broadcast.Event{ChatID: "other", Role: model.RoleAssistant, Content: "leaked"})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	gt.Equal(t, stream.Code, http.StatusOK)
	gt.Equal(t, stream.Header().Get("Content-Type"), "text/event-stream")

	body := stream.Body.String()
	gt.S(t, body).Contains("event: chat_message")
	gt.S(t, body).Contains(`"content":"Hel"`)
	gt.True(t, !strings.Contains(body, "leaked"))
}

func TestEventStreamRequiresChatID(t *testing.T) {
	api := setup(t)
	bearer, _ := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodGet, "/api/events", bearer, nil)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestEventStreamNotOwned(t *testing.T) {
	api := setup(t)
	owner, _ := api.signup(t, "owner@example.com")
	intruder, _ := api.signup(t, "intruder@example.com")

	rec := api.do(http.MethodPost, "/api/chats", owner, map[string]string{
		"documentId": "doc-1",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var created model.Chat
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = api.do(http.MethodGet, "/api/events?chatId="+string(created.ID), intruder, nil)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	api := setup(t)
	bearer, userID := api.signup(t, "ada@example.com")

	rec := api.do(http.MethodPut, "/api/users", bearer, map[string]string{
		"firstName": "Augusta",
	})
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, api.repo.users[userID].FirstName, "Augusta")
	gt.Equal(t, api.repo.users[userID].LastName, "User")

	rec = api.do(http.MethodDelete, "/api/users", bearer, nil)
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, len(api.repo.users), 0)
}
