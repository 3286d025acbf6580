package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/okanv/likeledger/internal/ledger"
	"github.com/okanv/likeledger/internal/middleware"
	"github.com/okanv/likeledger/internal/models"
	"github.com/okanv/likeledger/internal/repositories"
	"github.com/rs/zerolog"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	registry       *ledger.Registry
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository // to mirror like counts into post documents
	likeCache      repositories.LikeCache
	log            zerolog.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(registry *ledger.Registry, likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, likeCache repositories.LikeCache, log zerolog.Logger) *LikeHandler {
	return &LikeHandler{
		registry:       registry,
		likeRepository: likeRepo,
		postRepository: postRepo,
		likeCache:      likeCache,
		log:            log.With().Str("handler", "like").Logger(),
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:owner/likes", h.LikePost)
	g.GET("/posts/:owner/likes/count", h.GetLikesCount)
	g.GET("/posts/:owner/likes/status", h.GetLikeStatus)
}

// LikePost registers the calling signer's like on the owner's post. Liking
// twice is not an error: the call succeeds and reports already_liked.
func (h *LikeHandler) LikePost(c echo.Context) error {
	signer, ok := middleware.SignerFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No authenticated signer")
	}
	owner := ledger.Address(c.Param("owner"))
	liker := signer.Address()

	added, err := h.registry.LikePost(signer, owner)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if added {
		// Write-behind: journal row, cache entry, document counter. The
		// registry decides insertion under its lock, so this is scheduled
		// exactly once per distinct liker even under racing duplicates.
		go h.persistLike(string(owner), string(liker))
	}

	view, err := h.registry.GetPost(owner)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"owner":         owner,
		"likes":         view.Likes,
		"already_liked": !added,
	})
}

func (h *LikeHandler) persistLike(owner, liker string) {
	if err := h.likeRepository.RecordLike(&models.Like{OwnerAddress: owner, LikerAddress: liker}); err != nil {
		h.log.Error().Err(err).Str("owner", owner).Str("liker", liker).Msg("like journal write failed")
	}
	if err := h.likeCache.AddLiker(owner, liker); err != nil {
		h.log.Error().Err(err).Str("owner", owner).Str("liker", liker).Msg("like cache update failed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.postRepository.IncrementLikesCount(ctx, owner); err != nil {
		h.log.Error().Err(err).Str("owner", owner).Msg("post document counter update failed")
	}
}

// GetLikesCount returns the number of distinct likers of the owner's post,
// served from the cache when warm.
func (h *LikeHandler) GetLikesCount(c echo.Context) error {
	owner := ledger.Address(c.Param("owner"))

	if likes, hit, err := h.likeCache.GetLikesCount(string(owner)); err == nil && hit {
		// The post may still be unknown if the cache outlived a restart;
		// the registry remains the authority on existence.
		if _, err := h.registry.GetPost(owner); err == nil {
			return c.JSON(http.StatusOK, echo.Map{"owner": owner, "likes": likes})
		}
	}

	view, err := h.registry.GetPost(owner)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.likeCache.SetLikesCount(string(owner), view.Likes); err != nil {
		h.log.Warn().Err(err).Str("owner", string(owner)).Msg("like count cache warm failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"owner": owner, "likes": view.Likes})
}

// GetLikeStatus reports whether the calling signer has liked the owner's post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	signer, ok := middleware.SignerFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No authenticated signer")
	}
	owner := ledger.Address(c.Param("owner"))
	liker := signer.Address()

	// Cache fast path: membership is only ever written behind a committed
	// like, so a hit is trustworthy once the post is known to exist.
	if cached, err := h.likeCache.IsLiker(string(owner), string(liker)); err == nil && cached {
		if _, err := h.registry.GetPost(owner); err == nil {
			return c.JSON(http.StatusOK, echo.Map{
				"owner":     owner,
				"liker":     liker,
				"has_liked": true,
			})
		}
	}

	liked, err := h.registry.HasLiked(owner, liker)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"owner":     owner,
		"liker":     liker,
		"has_liked": liked,
	})
}
