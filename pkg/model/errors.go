package model

import "github.com/m-mizutani/goerr/v2"

// Error tags determine the HTTP status class a failure maps to at the
// transport layer.
var (
	ErrTagBadRequest   = goerr.NewTag("bad_request")
	ErrTagUnauthorized = goerr.NewTag("unauthorized")
	ErrTagNotFound     = goerr.NewTag("not_found")
	ErrTagInternal     = goerr.NewTag("internal")
)

var (
	ErrUserNotFound     = goerr.New("user not found", goerr.T(ErrTagNotFound))
	ErrChatNotFound     = goerr.New("chat not found", goerr.T(ErrTagNotFound))
	ErrDocumentNotFound = goerr.New("document not found", goerr.T(ErrTagNotFound))

	ErrUnauthorized = goerr.New("chat is not owned by the requester", goerr.T(ErrTagUnauthorized))

	ErrUserExists         = goerr.New("user already exists", goerr.T(ErrTagBadRequest))
	ErrInvalidCredentials = goerr.New("invalid email or password", goerr.T(ErrTagBadRequest))

	// ErrInvalidVector indicates a zero-magnitude or dimension-mismatched
	// embedding. It is always surfaced, never a silent NaN score.
	ErrInvalidVector = goerr.New("invalid embedding vector", goerr.T(ErrTagBadRequest))

	// ErrEmptyCompletion indicates the completion stream finished without
	// yielding any content.
	ErrEmptyCompletion = goerr.New("completion stream yielded no content", goerr.T(ErrTagBadRequest))

	ErrPersistence = goerr.New("persistence failure", goerr.T(ErrTagInternal))
)
