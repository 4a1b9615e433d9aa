package handler

import (
	"path"
	"sync"

	"github.com/freekieb7/basalt/http"
	"github.com/freekieb7/basalt/uuid"
)

// PasteStore keeps uploaded payloads in memory under generated IDs. It is
// shared handler state, so unlike the router it guards itself with a lock.
type PasteStore struct {
	mu     sync.RWMutex
	pastes map[string]paste
}

type paste struct {
	contentType string
	data        []byte
}

func NewPasteStore() *PasteStore {
	return &PasteStore{
		pastes: make(map[string]paste),
	}
}

// Create stores the raw request body and answers 201 with the new ID as
// plain text. An empty body is rejected with 400.
func (store *PasteStore) Create(req *http.Request) (*http.Response, error) {
	if len(req.Body) == 0 {
		return http.NewResponse().
			WithStatus(http.StatusBadRequest).
			WithText("empty paste body").
			Build()
	}

	contentType, found := req.HeaderValue("Content-Type")
	if !found {
		contentType = "application/octet-stream"
	}

	id := uuid.NewV4().String()

	store.mu.Lock()
	store.pastes[id] = paste{contentType: contentType, data: req.Body}
	store.mu.Unlock()

	return http.NewResponse().
		WithStatus(http.StatusCreated).
		WithText(id).
		Build()
}

// Fetch serves a stored paste addressed as the last path element, byte for
// byte and with the content type it was uploaded with.
func (store *PasteStore) Fetch(req *http.Request) (*http.Response, error) {
	id := path.Base(req.Path)
	if _, err := uuid.Parse(id); err != nil {
		return http.NewResponse().
			WithStatus(http.StatusNotFound).
			WithText("no such paste").
			Build()
	}

	store.mu.RLock()
	p, found := store.pastes[id]
	store.mu.RUnlock()

	if !found {
		return http.NewResponse().
			WithStatus(http.StatusNotFound).
			WithText("no such paste").
			Build()
	}

	return http.NewResponse().
		WithBody(p.data, p.contentType).
		Build()
}
