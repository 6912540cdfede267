package api

import (
	"net/http"

	reqdto "chatcart/internal/handler/dto/request"
	resdto "chatcart/internal/handler/dto/response"
	"chatcart/internal/handler/httperr"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
	}
}

// @Summary Admin login
// @Description Exchange the store PIN for an admin access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	token, err := h.authCommands.Login(c.Request.Context(), req.PIN)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidPIN):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid PIN", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{AccessToken: token})
}
