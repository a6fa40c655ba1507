package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rloerke/puffins/config"
	"github.com/rloerke/puffins/middleware"
	"github.com/rloerke/puffins/services"
	"github.com/rloerke/puffins/utils"
)

// VoteController exposes the vote and reaction ledgers.
type VoteController struct {
	votes     *services.VoteService
	reactions *services.ReactionService
}

// NewVoteController creates a new VoteController instance.
func NewVoteController(db *gorm.DB) *VoteController {
	return &VoteController{
		votes:     services.NewVoteService(db, config.Get().PopularityThreshold),
		reactions: services.NewReactionService(db),
	}
}

// Upvote casts an upvote on a post.
func (v *VoteController) Upvote(ctx *gin.Context) {
	v.cast(ctx, services.Up)
}

// Downvote casts a downvote on a post.
func (v *VoteController) Downvote(ctx *gin.Context) {
	v.cast(ctx, services.Down)
}

func (v *VoteController) cast(ctx *gin.Context, dir services.Direction) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing post id")
		return
	}

	result, err := v.votes.Cast(middleware.Viewer(ctx), id, dir)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")
	utils.InvalidateByPrefix(postDetailKey(ctx.Param("id")))

	// became_too_popular tells the client to send the voter to the Too
	// Popular feed instead of back to the main one.
	utils.Success(ctx, gin.H{
		"net_score":          result.NetScore,
		"became_too_popular": result.BecameTooPopular,
	})
}

// React sets the viewer's emotion reaction on a post.
func (v *VoteController) React(ctx *gin.Context) {
	var req struct {
		Emotion string `json:"emotion" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40028, "invalid request payload")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing post id")
		return
	}

	if err := v.reactions.Set(middleware.Viewer(ctx), id, req.Emotion); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:feed:")
	utils.InvalidateByPrefix(postDetailKey(ctx.Param("id")))

	utils.Success(ctx, gin.H{"message": "reaction recorded"})
}
