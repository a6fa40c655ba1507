package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rloerke/puffins/middleware"
	"github.com/rloerke/puffins/services"
	"github.com/rloerke/puffins/utils"
)

// FeedController serves the composed feed variants. The `filter` query
// parameter narrows any feed to a single category.
type FeedController struct {
	feeds *services.FeedService
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{feeds: services.NewFeedService(db)}
}

// Global returns the main feed: every non-too-popular post the viewer may see.
func (f *FeedController) Global(ctx *gin.Context) {
	f.compose(ctx, services.FeedGlobal, 0)
}

// Popular returns posts that have been latched too popular.
func (f *FeedController) Popular(ctx *gin.Context) {
	f.compose(ctx, services.FeedPopular, 0)
}

// Following returns the main feed restricted to authors the viewer follows.
func (f *FeedController) Following(ctx *gin.Context) {
	f.compose(ctx, services.FeedFollowing, 0)
}

// UserPosts returns a single author's posts (profile view).
func (f *FeedController) UserPosts(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40050, "missing user id")
		return
	}
	f.compose(ctx, services.FeedByAuthor, id)
}

func (f *FeedController) compose(ctx *gin.Context, kind services.FeedKind, authorID uint) {
	viewer := middleware.Viewer(ctx)
	category := strings.TrimSpace(ctx.Query("filter"))

	// Feeds are viewer-dependent once a block list exists, so only the
	// anonymous composition is cached.
	cacheKey := ""
	if viewer.Anonymous() && (kind == services.FeedGlobal || kind == services.FeedPopular) {
		cacheKey = feedCacheKey(kind, category)
		if b, cached := utils.CacheGetBytes(cacheKey); cached {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	feed, err := f.feeds.Compose(kind, viewer, authorID, category)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if cacheKey != "" {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: feed}
		utils.CacheSetJSON(cacheKey, wrapper, 0)
	}
	utils.Success(ctx, feed)
}

func feedCacheKey(kind services.FeedKind, category string) string {
	name := "global"
	if kind == services.FeedPopular {
		name = "popular"
	}
	return "cache:feed:" + name + ":cat=" + category
}
