package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rloerke/puffins/middleware"
	"github.com/rloerke/puffins/services"
	"github.com/rloerke/puffins/utils"
)

// UserController handles follow/block relations and admin rank changes.
type UserController struct {
	relations *services.RelationService
}

// NewUserController creates a new UserController instance.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{relations: services.NewRelationService(db)}
}

type relationRequest struct {
	Username string `json:"username" binding:"required"`
}

// Follow adds the named user to the viewer's followed list.
func (u *UserController) Follow(ctx *gin.Context) {
	var req relationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40028, "invalid request payload")
		return
	}

	if err := u.relations.Follow(middleware.Viewer(ctx), req.Username); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")
	utils.Success(ctx, gin.H{"message": "now following " + req.Username})
}

// Block adds the named user to the viewer's block list, hiding their
// posts from the viewer's feeds.
func (u *UserController) Block(ctx *gin.Context) {
	var req relationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40028, "invalid request payload")
		return
	}

	if err := u.relations.Block(middleware.Viewer(ctx), req.Username); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")
	utils.Success(ctx, gin.H{"message": "blocked " + req.Username})
}

// Unblock removes the named user from the viewer's block list. Removing
// a user who was never blocked succeeds quietly.
func (u *UserController) Unblock(ctx *gin.Context) {
	var req relationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40028, "invalid request payload")
		return
	}

	if err := u.relations.Unblock(middleware.Viewer(ctx), req.Username); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")
	utils.Success(ctx, gin.H{"message": "unblocked " + req.Username})
}

// Blocked lists the usernames the viewer has blocked.
func (u *UserController) Blocked(ctx *gin.Context) {
	names, err := u.relations.Blocked(middleware.Viewer(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"blocked": names})
}

// SetRank updates a user's rank. Admin only.
func (u *UserController) SetRank(ctx *gin.Context) {
	var req struct {
		Rank int `json:"rank" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40028, "invalid request payload")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing user id")
		return
	}

	if err := u.relations.SetRank(middleware.Viewer(ctx), id, req.Rank); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"message": "rank updated"})
}
