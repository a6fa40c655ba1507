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

// PostController manages CRUD operations for posts and comments.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{posts: services.NewPostService(db)}
}

// CreatePost allows authenticated users to publish new opinions.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required,min=1"`
		Category string `json:"category" binding:"required,min=1"`
		Body     string `json:"body" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	body := utils.Sanitize(req.Body)

	post, err := p.posts.Create(middleware.Viewer(ctx), title, req.Category, body)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")

	utils.Success(ctx, gin.H{"post": post})
}

// GetPost returns a single post with author, comments and counters.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing post id")
		return
	}

	if b, cached := utils.CacheGetBytes(postDetailKey(ctx.Param("id"))); cached {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	view, err := p.posts.Get(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: view}
	utils.CacheSetJSON(postDetailKey(ctx.Param("id")), wrapper, 0)
	utils.Success(ctx, view)
}

// UpdatePost allows the author (or the admin) to edit a post's title,
// category and body.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required,min=1"`
		Category string `json:"category" binding:"required,min=1"`
		Body     string `json:"body" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing post id")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40025, "title cannot be empty")
		return
	}
	body := utils.Sanitize(req.Body)

	post, err := p.posts.Update(middleware.Viewer(ctx), id, title, req.Category, body)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")
	utils.InvalidateByPrefix(postDetailKey(ctx.Param("id")))

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the author (or the admin) to delete a post, cascading
// its comments and ledger rows.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing post id")
		return
	}

	if err := p.posts.Delete(middleware.Viewer(ctx), id); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")
	utils.InvalidateByPrefix(postDetailKey(ctx.Param("id")))

	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// CreateComment allows authenticated users to comment on posts.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Body string `json:"body" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40026, "invalid request payload")
		return
	}

	body := utils.Sanitize(req.Body)
	if body == "" {
		utils.Error(ctx, http.StatusBadRequest, 40027, "comment cannot be empty")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing post id")
		return
	}

	comment, err := p.posts.CreateComment(middleware.Viewer(ctx), id, body)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(postDetailKey(ctx.Param("id")))
	utils.InvalidateByPrefix("cache:feed:")

	utils.Success(ctx, gin.H{"comment": comment})
}

// The trailing separator keeps the key for post 1 from being a prefix of
// the keys for posts 10, 11 and so on, since invalidation is prefix-based.
func postDetailKey(id string) string {
	return "cache:post:detail:" + id + ":"
}
