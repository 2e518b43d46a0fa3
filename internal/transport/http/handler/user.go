package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/app"
	"microblog/internal/transport/http/response"
	"microblog/internal/validation"
)

type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Field constraints live in the validation layer, not in binding tags,
// so a bad payload reports every violated field at once.
type SignupRequest struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Password  string `json:"password"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	BirthDate *string `json:"birth_date"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	user, err := h.users.Register(c.Request.Context(), validation.UserRegisterInput{
		UserID:    req.UserID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Password:  req.Password,
	})
	if err != nil {
		writeDomainError(c, err, "register failed")
		return
	}
	response.Created(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err, "list users failed")
		return
	}
	response.OK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err, "get user failed")
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), validation.UserUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		writeDomainError(c, err, "update user failed")
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err, "delete user failed")
		return
	}
	response.OK(c, gin.H{"deleted": id})
}
