package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rloerke/puffins/config"
	"github.com/rloerke/puffins/middleware"
	"github.com/rloerke/puffins/models"
	"github.com/rloerke/puffins/utils"
)

// AuthController handles signup, login and logout for local accounts.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Register handles account creation with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required,min=2,max=64"`
		Password string `json:"password" binding:"required,min=6"`
		Confirm  string `json:"confirm"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(req.Username) {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username may only contain letters, digits, '-' and '_'")
		return
	}

	if req.Confirm != "" && req.Password != req.Confirm {
		utils.Error(ctx, http.StatusBadRequest, 40003, "passwords do not match")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
	}
	// The unique index on username is the only duplicate check; a pre-check
	// would race with concurrent registrations of the same name.
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// Login validates credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// Logout invalidates the token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(72 * time.Hour)
	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt = claims.RegisteredClaims.ExpiresAt.Time
	}

	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's account.
func (a *AuthController) Me(ctx *gin.Context) {
	viewer := middleware.Viewer(ctx)
	if viewer.Anonymous() {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "you must be logged in")
		return
	}
	var user models.User
	if err := a.db.First(&user, viewer.ID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"user": userResponse(user)})
}

// GetUserPublic returns public user info by ID.
func (a *AuthController) GetUserPublic(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40050, "missing user id")
		return
	}
	var user models.User
	if err := a.db.First(&user, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	utils.Success(ctx, userResponse(user))
}

func userResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"rank":       user.Rank,
		"is_admin":   config.IsAdminUsername(user.Username),
		"created_at": user.CreatedAt,
	}
}
