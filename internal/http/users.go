package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
	"comic-catalog/internal/service"
)

type UserResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	IsStaff     bool    `json:"is_staff"`
	IsSuperuser bool    `json:"is_superuser"`
	IsActive    bool    `json:"is_active"`
	DateJoined  string  `json:"date_joined"`
	LastLogin   *string `json:"last_login"`
}

func userToResponse(u domain.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined.UTC().Format(time.RFC3339),
	}
	if u.LastLogin != nil {
		s := u.LastLogin.UTC().Format(time.RFC3339)
		resp.LastLogin = &s
	}
	return resp
}

// listUsers serves GET /users/list/.
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getUser serves GET /users/:username/.
func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login serves POST /login/. Bad credentials answer 400, not 401.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Credentials."})
			return
		}
		internalError(c, err)
		return
	}

	token, err := h.users.IssueOrGetToken(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userToResponse(*user),
		"token": token.Key,
	})
}
