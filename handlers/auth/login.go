package auth

import (
	"net/http"
	"time"

	"judgeapi/database"
	"judgeapi/middleware"
	"judgeapi/models"
	"judgeapi/utils"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
)

// Login authenticates an admin user
// @Summary Login
// @Description Authenticate with email and password, sets an auth cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} response.ErrorResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if user.Blocked {
		response.Error(c, http.StatusUnauthorized, ErrAccountBlocked)
		return
	}

	token, err := middleware.GenerateToken(user.ID, req.RememberMe)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	now := time.Now()
	user.LastConnected = &now
	database.DB.Save(&user)

	setCookieToken(c, token, req.RememberMe)
	c.JSON(http.StatusOK, AuthResponse{
		Token:         token,
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		IsAdmin:       user.IsAdmin,
		LastConnected: user.LastConnected,
	})
}

// CheckAuth returns the authenticated user's profile
// @Summary Check authentication
// @Description Validate the auth cookie and return the current user
// @Tags Auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/check [get]
func CheckAuth(c *gin.Context) {
	middleware.AuthMiddleware()(c)
	if c.IsAborted() {
		return
	}

	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		IsAdmin:       user.IsAdmin,
		LastConnected: user.LastConnected,
	})
}

// Logout clears the auth cookie
// @Summary Logout
// @Description Clear the authentication cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": ErrLogoutSuccess})
}
