package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"uinify-backend/internal/app"
	"uinify-backend/internal/transport/http/response"
)

const entityUser = "User"

type UserHandler struct {
	userService *app.UserService
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.OK(c, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	body, ok := bindObject(c, "username", "password")
	if !ok {
		return
	}
	username, ok := body.String(c, "username")
	if !ok {
		return
	}
	password, ok := body.String(c, "password")
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), app.CreateUserInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		internalError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, entityUser)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			notFound(c, entityUser)
		default:
			internalError(c, err)
		}
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, entityUser)
		return
	}

	user, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			notFound(c, entityUser)
		default:
			internalError(c, err)
		}
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) Components(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, entityUser)
		return
	}

	components, err := h.userService.ListUserComponents(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	response.OK(c, components)
}
