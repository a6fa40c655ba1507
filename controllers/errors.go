package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rloerke/puffins/services"
	"github.com/rloerke/puffins/utils"
)

// respondServiceError maps the core's typed outcomes onto the JSON envelope.
// Anything unrecognized is an infrastructure failure and is logged, not
// interpreted.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAuthRequired):
		utils.Error(ctx, http.StatusUnauthorized, 40110, "you must be logged in")
	case errors.Is(err, services.ErrOwnership):
		utils.Error(ctx, http.StatusForbidden, 40301, "you do not own this resource")
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "not found")
	case errors.Is(err, services.ErrDuplicateVote):
		utils.Error(ctx, http.StatusConflict, 40910, "you have already voted")
	case errors.Is(err, services.ErrDuplicateReaction):
		utils.Error(ctx, http.StatusConflict, 40911, "you have already reacted")
	case errors.Is(err, services.ErrDuplicateRelation):
		utils.Error(ctx, http.StatusConflict, 40912, "relation already exists")
	case errors.Is(err, services.ErrSelfRelation):
		utils.Error(ctx, http.StatusBadRequest, 40040, "you cannot target yourself")
	case errors.Is(err, services.ErrInvalidEmotion):
		utils.Error(ctx, http.StatusBadRequest, 40041, "unknown reaction emotion")
	case errors.Is(err, services.ErrInvalidRank):
		utils.Error(ctx, http.StatusBadRequest, 40042, "rank must be between 1 and 10")
	default:
		utils.Sugar.Errorf("service error on %s: %v", ctx.FullPath(), err)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal error")
	}
}

func parseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
