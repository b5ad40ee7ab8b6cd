package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type UserHandler struct {
	users         services.UserService
	subscriptions services.SubscriptionService
	pagination    Pagination
}

func NewUserHandler(users services.UserService, subscriptions services.SubscriptionService, pagination Pagination) *UserHandler {
	return &UserHandler{users: users, subscriptions: subscriptions, pagination: pagination}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	page, ok := h.pagination.page(c)
	if !ok {
		return
	}
	result, err := h.users.List(c.Request.Context(), actor(c), page)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondPage(c, page.Number, page.Size, result.Count, result.Results)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	me, err := h.users.Me(c.Request.Context(), actor(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, me)
}

// GET /api/users/subscriptions?page&limit&recipes_limit
func (h *UserHandler) Subscriptions(c *gin.Context) {
	page, ok := h.pagination.page(c)
	if !ok {
		return
	}
	recipesLimit, ok := queryInt(c, "recipes_limit", 0)
	if !ok {
		return
	}
	result, err := h.subscriptions.List(c.Request.Context(), actor(c), page, recipesLimit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondPage(c, page.Number, page.Size, result.Count, result.Results)
}

// POST /api/users/:id/subscribe?recipes_limit
func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipesLimit, ok := queryInt(c, "recipes_limit", 0)
	if !ok {
		return
	}
	view, err := h.subscriptions.Subscribe(c.Request.Context(), actor(c), id, recipesLimit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, view)
}

// DELETE /api/users/:id/subscribe
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.subscriptions.Unsubscribe(c.Request.Context(), actor(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
