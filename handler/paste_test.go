package handler

import (
	"testing"

	"github.com/freekieb7/basalt/http"
	"github.com/freekieb7/basalt/test"
)

func TestPasteCreateAndFetch(t *testing.T) {
	store := NewPasteStore()

	create := &http.Request{
		Method: http.MethodPost,
		Path:   "/paste",
		Body:   []byte("some snippet"),
	}
	create.Headers.Set("Content-Type", "text/plain")

	res, err := store.Create(create)
	test.NoError(t, err)
	test.Equal(t, http.StatusCreated, res.Status)

	id := string(res.Body)
	test.Equal(t, 36, len(id))

	fetch := &http.Request{Method: http.MethodGet, Path: "/paste/" + id}
	res, err = store.Fetch(fetch)
	test.NoError(t, err)
	test.Equal(t, http.StatusOK, res.Status)
	test.BytesEqual(t, []byte("some snippet"), res.Body)

	contentType, _ := res.Headers.Get("Content-Type")
	test.Equal(t, "text/plain", contentType)
}

func TestPasteCreateEmptyBody(t *testing.T) {
	store := NewPasteStore()

	res, err := store.Create(&http.Request{Method: http.MethodPost, Path: "/paste"})
	test.NoError(t, err)
	test.Equal(t, http.StatusBadRequest, res.Status)
}

func TestPasteFetchUnknownID(t *testing.T) {
	store := NewPasteStore()

	res, err := store.Fetch(&http.Request{
		Method: http.MethodGet,
		Path:   "/paste/00000000-0000-4000-8000-000000000000",
	})
	test.NoError(t, err)
	test.Equal(t, http.StatusNotFound, res.Status)
}

func TestPasteFetchInvalidID(t *testing.T) {
	store := NewPasteStore()

	res, err := store.Fetch(&http.Request{Method: http.MethodGet, Path: "/paste/../etc/passwd"})
	test.NoError(t, err)
	test.Equal(t, http.StatusNotFound, res.Status)
}
