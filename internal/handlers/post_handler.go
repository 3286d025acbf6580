package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/okanv/likeledger/internal/ledger"
	"github.com/okanv/likeledger/internal/middleware"
	"github.com/okanv/likeledger/internal/models"
	"github.com/okanv/likeledger/internal/repositories"
	"github.com/rs/zerolog"
)

// PostHandler handles HTTP requests for publishing and reading posts
type PostHandler struct {
	registry       *ledger.Registry
	postRepository repositories.PostRepository
	log            zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(registry *ledger.Registry, postRepo repositories.PostRepository, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		registry:       registry,
		postRepository: postRepo,
		log:            log.With().Str("handler", "post").Logger(),
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:owner", h.GetPost)
}

// CreatePost publishes the calling signer's post. An account publishes at
// most once; a second attempt is a conflict and leaves the first post intact.
func (h *PostHandler) CreatePost(c echo.Context) error {
	signer, ok := middleware.SignerFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No authenticated signer")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.registry.CreatePost(signer, req.PostID); err != nil {
		if errors.Is(err, ledger.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, "Account has already published a post")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	owner := string(signer.Address())

	// Write-behind: the registry commit is authoritative, the document is a
	// durable mirror. A failed insert is logged, never surfaced.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		doc := &models.PostDocument{OwnerAddress: owner, PostID: req.PostID}
		if err := h.postRepository.CreatePost(ctx, doc); err != nil {
			h.log.Error().Err(err).Str("owner", owner).Msg("post document insert failed")
		}
	}()

	h.log.Info().Str("owner", owner).Uint64("post_id", req.PostID).Msg("post published")

	view, err := h.registry.GetPost(signer.Address())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// GetPost returns the post published under the owner address. When the
// registry has no entry (a restart wiped in-process state) the durable
// document archive still serves the historical read.
func (h *PostHandler) GetPost(c echo.Context) error {
	owner := ledger.Address(c.Param("owner"))

	view, err := h.registry.GetPost(owner)
	if err != nil {
		if !errors.Is(err, ledger.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		doc, docErr := h.postRepository.GetPostByOwner(c.Request().Context(), string(owner))
		if docErr != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return c.JSON(http.StatusOK, ledger.PostView{
			ID:    doc.PostID,
			Owner: owner,
			Likes: doc.LikesCount,
		})
	}

	// Likers are not part of the public post view.
	view.Likers = nil
	return c.JSON(http.StatusOK, view)
}
