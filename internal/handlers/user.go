package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/dto"
	"github.com/yukikurage/task-management-services/internal/response"
	"github.com/yukikurage/task-management-services/internal/services"
	"github.com/yukikurage/task-management-services/internal/validation"
)

const (
	MsgUserRegistered = "User registered successfully"
	MsgUserLoggedIn   = "User logged in successfully"
	MsgUserLoggedOut  = "User logged out successfully"
	MsgUserFetched    = "User fetched successfully"
)

// UserHandler coordinates the identity service's HTTP handlers.
type UserHandler struct {
	identityService *services.IdentityService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(identityService *services.IdentityService) *UserHandler {
	return &UserHandler{
		identityService: identityService,
	}
}

// Register creates a new user.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.identityService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, MsgUserRegistered, dto.ToUserDTO(*user))
}

// Login verifies credentials and returns the user.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.identityService.Authenticate(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, MsgUserLoggedIn, dto.ToUserDTO(*user))
}

// Logout always succeeds; no session is kept server side.
func (h *UserHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, MsgUserLoggedOut, nil)
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	var params dto.UserParams
	if err := validation.BindURI(c, &params); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.identityService.GetUser(c.Request.Context(), params.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, MsgUserFetched, dto.ToUserDTO(*user))
}
