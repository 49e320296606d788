package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"uinify-backend/internal/app"
	"uinify-backend/internal/transport/http/response"
)

const entityComponent = "Component"

type ComponentHandler struct {
	componentService *app.ComponentService
}

func NewComponentHandler(componentService *app.ComponentService) *ComponentHandler {
	return &ComponentHandler{componentService: componentService}
}

func (h *ComponentHandler) List(c *gin.Context) {
	components, err := h.componentService.ListComponents(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.OK(c, components)
}

func (h *ComponentHandler) Create(c *gin.Context) {
	body, ok := bindObject(c, "user_id", "name", "content")
	if !ok {
		return
	}
	userID, ok := body.ID(c, "user_id")
	if !ok {
		return
	}
	name, ok := body.String(c, "name")
	if !ok {
		return
	}
	content, ok := body.NullableString(c, "content")
	if !ok {
		return
	}

	component, err := h.componentService.CreateComponent(c.Request.Context(), app.CreateComponentInput{
		UserID:  userID,
		Name:    name,
		Content: content,
	})
	if err != nil {
		internalError(c, err)
		return
	}
	response.OK(c, component)
}

func (h *ComponentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, entityComponent)
		return
	}

	component, err := h.componentService.GetComponent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, component)
}

// Update replaces name and content; both keys are required.
func (h *ComponentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, entityComponent)
		return
	}

	body, ok := bindObject(c, "name", "content")
	if !ok {
		return
	}
	name, ok := body.String(c, "name")
	if !ok {
		return
	}
	content, ok := body.NullableString(c, "content")
	if !ok {
		return
	}

	component, err := h.componentService.UpdateComponent(c.Request.Context(), id, app.UpdateComponentInput{
		Name:    name,
		Content: content,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, component)
}

func (h *ComponentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, entityComponent)
		return
	}

	component, err := h.componentService.DeleteComponent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, component)
}

func (h *ComponentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrComponentNotFound):
		notFound(c, entityComponent)
	default:
		internalError(c, err)
	}
}
