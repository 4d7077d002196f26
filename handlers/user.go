package handlers

import (
	"errors"
	"net/http"

	"garagehub/middleware"
	"garagehub/models"
	"garagehub/services/user"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account registration, login, and profile management.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	case errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "A user with this email already exists", "")
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
	default:
		utils.GetLogger().Error("User operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

type registerInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number"`
}

// Register handles POST /users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.Service.RegisterUser(models.User{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.Service.AuthenticateUser(input.Email, input.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Service.GetUserByID(middleware.AuthedUserID(c))
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile handles PUT /users/me with a partial body.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	u.ID = middleware.AuthedUserID(c)

	updated, err := h.Service.UpdateUser(u)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAccount handles DELETE /users/me.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Service.DeleteUser(middleware.AuthedUserID(c)); err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
