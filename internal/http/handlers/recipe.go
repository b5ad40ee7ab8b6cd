package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type RecipeHandler struct {
	recipes      services.RecipeService
	ledger       services.LedgerService
	shoppingList services.ShoppingListService
	pagination   Pagination
}

func NewRecipeHandler(recipes services.RecipeService, ledger services.LedgerService, shoppingList services.ShoppingListService, pagination Pagination) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		ledger:       ledger,
		shoppingList: shoppingList,
		pagination:   pagination,
	}
}

// GET /api/recipes?page&limit&author&tags&is_favorited&is_in_shopping_cart
func (h *RecipeHandler) List(c *gin.Context) {
	page, ok := h.pagination.page(c)
	if !ok {
		return
	}
	var filter services.RecipeFilter
	if raw := c.Query("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		filter.AuthorID = &id
	}
	for _, slug := range c.QueryArray("tags") {
		if slug = strings.TrimSpace(slug); slug != "" {
			filter.TagSlugs = append(filter.TagSlugs, slug)
		}
	}
	if filter.IsFavorited, ok = queryBool(c, "is_favorited"); !ok {
		return
	}
	if filter.IsInShoppingCart, ok = queryBool(c, "is_in_shopping_cart"); !ok {
		return
	}

	result, err := h.recipes.List(c.Request.Context(), actor(c), filter, page)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondPage(c, page.Number, page.Size, result.Count, result.Results)
}

// GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, recipe)
}

// POST /api/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var in services.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	recipe, err := h.recipes.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, recipe)
}

// PATCH /api/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), actor(c), id, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, recipe)
}

// DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), actor(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// AddTo returns the POST handler that puts a recipe in the caller's favorites or cart.
func (h *RecipeHandler) AddTo(kind types.LedgerKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		short, err := h.ledger.Add(c.Request.Context(), actor(c), kind, id)
		if err != nil {
			response.RespondAPIError(c, err)
			return
		}
		response.RespondCreated(c, short)
	}
}

// RemoveFrom returns the matching DELETE handler.
func (h *RecipeHandler) RemoveFrom(kind types.LedgerKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := h.ledger.Remove(c.Request.Context(), actor(c), kind, id); err != nil {
			response.RespondAPIError(c, err)
			return
		}
		response.RespondNoContent(c)
	}
}

// GET /api/recipes/download_shopping_cart
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	doc, err := h.shoppingList.Export(c.Request.Context(), actor(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondFile(c, doc.Filename, doc.ContentType, doc.Body)
}
