package handlers

import (
	"errors"
	"net/http"

	"shoguntrade/internal/auth"
	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/models"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LoginRequest accepts a username or an email as identifier.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func issueToken(user *models.User) (string, error) {
	role := auth.RoleMember
	if user.IsAdmin {
		role = auth.RoleAdmin
	}
	return auth.GenerateToken(dbconfig.JWTSecret(), dbconfig.JWTTTL(), user.ID, user.Username, role)
}

// Register creates a member under an existing referrer and signs them in.
func Register(c *gin.Context) {
	var req business.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := business.RegisterUser(c.Request.Context(), dbconfig.DB, req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := issueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"user_id":     user.ID,
		"referrer_id": user.ReferrerID,
	}).Info("User registered")
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login exchanges credentials for an access token.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var user models.User
	err := dbconfig.DB.WithContext(c.Request.Context()).
		Where("username = ? OR email = ?", req.Username, req.Username).
		First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, err)
		return
	}
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "unauthorized"})
		return
	}

	token, err := issueToken(&user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
