package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
	errs "github.com/yungbote/foodgram-backend/internal/pkg/errors"
	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/pdf"
)

const (
	ShoppingListFilename = "shopping_cart.pdf"
	shoppingListTemplate = "shopping_cart.html"
	shoppingListTitle    = "Список покупок"
)

// Document is a rendered file ready to be sent as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type shoppingListDoc struct {
	Title       string
	Owner       string
	Logo        string
	GeneratedAt time.Time
	Items       []types.ShoppingListItem
}

type ShoppingListService interface {
	Build(ctx context.Context, actor Actor) ([]types.ShoppingListItem, error)
	Export(ctx context.Context, actor Actor) (*Document, error)
}

type shoppingListService struct {
	db       *gorm.DB
	log      *logger.Logger
	list     repos.ShoppingListRepo
	users    repos.UserRepo
	renderer pdf.Renderer
	logo     string
	metrics  *observability.Metrics
}

// NewShoppingListService wires the aggregator to a renderer. logo is an optional
// MEDIA_URL/STATIC_URL reference drawn in the document header.
func NewShoppingListService(db *gorm.DB, log *logger.Logger, list repos.ShoppingListRepo, users repos.UserRepo, renderer pdf.Renderer, logo string, metrics *observability.Metrics) ShoppingListService {
	return &shoppingListService{
		db:       db,
		log:      log.With("service", "ShoppingListService"),
		list:     list,
		users:    users,
		renderer: renderer,
		logo:     logo,
		metrics:  metrics,
	}
}

func (s *shoppingListService) Build(ctx context.Context, actor Actor) ([]types.ShoppingListItem, error) {
	if actor.Anonymous() {
		return nil, unauthorizedError()
	}
	items, err := s.list.Aggregate(dbctx.Context{Ctx: ctx}, actor.UserID)
	if err != nil {
		return nil, internalError("shopping_list_failed", err)
	}
	return items, nil
}

func (s *shoppingListService) Export(ctx context.Context, actor Actor) (*Document, error) {
	if actor.Anonymous() {
		return nil, unauthorizedError()
	}
	dbc := dbctx.Context{Ctx: ctx}
	items, err := s.list.Aggregate(dbc, actor.UserID)
	if err != nil {
		return nil, internalError("shopping_list_failed", err)
	}
	owner := ""
	if u, err := s.users.GetByID(dbc, actor.UserID); err == nil && u != nil {
		owner = strings.TrimSpace(u.FirstName + " " + u.LastName)
		if owner == "" {
			owner = u.Username
		}
	}

	start := time.Now()
	body, err := s.renderer.Render(ctx, shoppingListTemplate, shoppingListDoc{
		Title:       shoppingListTitle,
		Owner:       owner,
		Logo:        s.logo,
		GeneratedAt: time.Now(),
		Items:       items,
	})
	if err != nil {
		s.metrics.ObservePDFRender("error", time.Since(start))
		s.log.Error("Shopping list render failed", "user_id", actor.UserID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "render_failed", fmt.Errorf("%w: %v", errs.ErrRender, err))
	}
	s.metrics.ObservePDFRender("ok", time.Since(start))
	s.log.Debug("Shopping list rendered", "user_id", actor.UserID, "items", len(items), "bytes", len(body))
	return &Document{Filename: ShoppingListFilename, ContentType: pdf.ContentType, Body: body}, nil
}
