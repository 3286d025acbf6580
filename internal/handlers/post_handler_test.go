package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/okanv/likeledger/internal/ledger"
	"github.com/okanv/likeledger/internal/middleware"
	"github.com/okanv/likeledger/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asSigner(c echo.Context, addr string) {
	c.Set(middleware.SignerContextKey, ledger.NewSigner(ledger.Address(addr)))
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func TestCreatePost(t *testing.T) {
	e := echo.New()
	registry := ledger.NewRegistry()
	postRepo := newFakePostRepo()
	h := NewPostHandler(registry, postRepo, zerolog.Nop())

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/posts", `{"post_id": 101}`)
	asSigner(c, "alice")

	require.NoError(t, h.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var view ledger.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, uint64(101), view.ID)
	require.Equal(t, uint64(0), view.Likes)

	// Write-behind document appears shortly after.
	require.Eventually(t, func() bool {
		doc, err := postRepo.GetPostByOwner(c.Request().Context(), "alice")
		return err == nil && doc.PostID == 101
	}, time.Second, 10*time.Millisecond)
}

func TestCreatePostTwiceConflicts(t *testing.T) {
	e := echo.New()
	registry := ledger.NewRegistry()
	h := NewPostHandler(registry, newFakePostRepo(), zerolog.Nop())

	c, _ := newJSONContext(e, http.MethodPost, "/api/v1/posts", `{"post_id": 101}`)
	asSigner(c, "alice")
	require.NoError(t, h.CreatePost(c))

	c, _ = newJSONContext(e, http.MethodPost, "/api/v1/posts", `{"post_id": 202}`)
	asSigner(c, "alice")
	err := h.CreatePost(c)
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, httpStatus(t, err))

	// First post untouched.
	view, err2 := registry.GetPost("alice")
	require.NoError(t, err2)
	require.Equal(t, uint64(101), view.ID)
}

func TestCreatePostRejectsBadPayload(t *testing.T) {
	e := echo.New()
	h := NewPostHandler(ledger.NewRegistry(), newFakePostRepo(), zerolog.Nop())

	c, _ := newJSONContext(e, http.MethodPost, "/api/v1/posts", `{}`)
	asSigner(c, "alice")
	err := h.CreatePost(c)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestCreatePostWithoutSigner(t *testing.T) {
	e := echo.New()
	h := NewPostHandler(ledger.NewRegistry(), newFakePostRepo(), zerolog.Nop())

	c, _ := newJSONContext(e, http.MethodPost, "/api/v1/posts", `{"post_id": 1}`)
	err := h.CreatePost(c)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestGetPost(t *testing.T) {
	e := echo.New()
	registry := ledger.NewRegistry()
	h := NewPostHandler(registry, newFakePostRepo(), zerolog.Nop())

	require.NoError(t, registry.CreatePost(ledger.NewSigner("alice"), 7))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/posts/alice", "")
	c.SetParamNames("owner")
	c.SetParamValues("alice")
	require.NoError(t, h.GetPost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view ledger.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, uint64(7), view.ID)
	require.Equal(t, ledger.Address("alice"), view.Owner)
	require.Empty(t, view.Likers)
}

func TestGetPostFallsBackToDocumentArchive(t *testing.T) {
	e := echo.New()
	postRepo := newFakePostRepo()
	// Registry is empty, as after a restart; only the archive remembers.
	h := NewPostHandler(ledger.NewRegistry(), postRepo, zerolog.Nop())

	require.NoError(t, postRepo.CreatePost(context.Background(), &models.PostDocument{
		OwnerAddress: "alice",
		PostID:       7,
		LikesCount:   3,
	}))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/posts/alice", "")
	c.SetParamNames("owner")
	c.SetParamValues("alice")
	require.NoError(t, h.GetPost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view ledger.PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, uint64(7), view.ID)
	require.Equal(t, ledger.Address("alice"), view.Owner)
	require.Equal(t, uint64(3), view.Likes)
}

func TestGetPostUnknownOwner(t *testing.T) {
	e := echo.New()
	h := NewPostHandler(ledger.NewRegistry(), newFakePostRepo(), zerolog.Nop())

	c, _ := newJSONContext(e, http.MethodGet, "/api/v1/posts/nobody", "")
	c.SetParamNames("owner")
	c.SetParamValues("nobody")
	err := h.GetPost(c)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, httpStatus(t, err))
}
