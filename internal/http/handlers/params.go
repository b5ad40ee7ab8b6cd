package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/services"
)

// Pagination holds the page size defaults shared by list endpoints.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

func (p Pagination) page(c *gin.Context) (services.Page, bool) {
	page := services.Page{Number: 1, Size: p.DefaultSize}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.RespondError(c, http.StatusNotFound, "invalid_page", nil)
			return page, false
		}
		page.Number = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
			return page, false
		}
		page.Size = n
	}
	if p.MaxSize > 0 && page.Size > p.MaxSize {
		page.Size = p.MaxSize
	}
	return page, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return 0, false
	}
	return n, true
}

// queryBool reads 1/0/true/false. Absent values are nil.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := strings.ToLower(strings.TrimSpace(c.Query(name)))
	switch raw {
	case "":
		return nil, true
	case "1", "true":
		v := true
		return &v, true
	case "0", "false":
		v := false
		return &v, true
	}
	response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
	return nil, false
}

func actor(c *gin.Context) services.Actor {
	return services.ActorFromContext(c.Request.Context())
}
