package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/auth"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

func setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !emailPattern.MatchString(req.Email) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if len(req.Password) < 8 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long"})
		return
	}

	if req.Password != req.ConfirmPassword {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	if _, err := models.GetUserByUsername(req.Username); err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username is already taken"})
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		log.Printf("Failed to check existing username: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if _, err := models.GetUserByEmail(req.Email); err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "This email is already used"})
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		log.Printf("Failed to check existing email: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := models.CreateUser(req.Username, req.Email, string(passwordHash))

	if err != nil {
		// The unique indexes are the final arbiter even after the lookups
		// above passed.
		if errors.Is(err, models.ErrDuplicateUnique) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username or email is already taken"})
			return
		}

		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusCreated, gin.H{"user": user})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := models.GetUserByUsername(req.Username)

	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username and/or password"})
			return
		}

		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username and/or password"})
		return
	}

	if err := models.UpdateLastLogin(user.ID); err != nil {
		log.Printf("Failed to update last login: %v", err)
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func Logout(ctx *gin.Context) {
	setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := models.GetUserByID(currentUser.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !emailPattern.MatchString(req.Email) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if existing, err := models.GetUserByUsername(req.Username); err == nil && existing.ID != currentUser.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username is already taken"})
		return
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("Failed to check existing username: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if existing, err := models.GetUserByEmail(req.Email); err == nil && existing.ID != currentUser.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "This email is already used"})
		return
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("Failed to check existing email: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var hash *string

	if req.Password != "" {
		if req.Password != req.ConfirmPassword {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

		if err != nil {
			log.Printf("Failed to hash password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		hashStr := string(passwordHash)
		hash = &hashStr
	}

	if err := models.UpdateUserProfile(currentUser.ID, req.Username, req.Email, hash); err != nil {
		if errors.Is(err, models.ErrDuplicateUnique) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username or email is already taken"})
			return
		}

		respondModelError(ctx, err, "User")
		return
	}

	user, err := models.GetUserByID(currentUser.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
