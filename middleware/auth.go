package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rloerke/puffins/config"
	"github.com/rloerke/puffins/services"
	"github.com/rloerke/puffins/utils"
)

const (
	// ContextViewerKey is the key used to store the resolved viewer in Gin context.
	ContextViewerKey = "viewer"
)

// AuthRequired ensures the request is authenticated via JWT and stores the
// resolved viewer in the context.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing or malformed")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextViewerKey, viewerFromClaims(claims))
		ctx.Next()
	}
}

// OptionalAuth resolves the viewer when a valid bearer token is present but
// lets anonymous requests through. Feeds use this so the block filter can be
// applied for signed-in readers while the public feeds stay public.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok || utils.IsTokenBlacklisted(token) {
			ctx.Next()
			return
		}
		if claims, err := utils.ParseToken(token); err == nil {
			ctx.Set(ContextViewerKey, viewerFromClaims(claims))
		}
		ctx.Next()
	}
}

// Viewer returns the viewer stored by the auth middlewares; the zero Viewer
// (anonymous) when none was resolved.
func Viewer(ctx *gin.Context) services.Viewer {
	if v, exists := ctx.Get(ContextViewerKey); exists {
		if viewer, ok := v.(services.Viewer); ok {
			return viewer
		}
	}
	return services.Viewer{}
}

func viewerFromClaims(claims *utils.Claims) services.Viewer {
	return services.Viewer{
		ID:       claims.UserID,
		Username: claims.Username,
		IsAdmin:  config.IsAdminUsername(claims.Username),
	}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
