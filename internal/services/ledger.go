package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// LedgerService moves a recipe in and out of a user's favorites or shopping cart.
type LedgerService interface {
	// Add fails with Conflict when the recipe is already in the list.
	Add(ctx context.Context, actor Actor, kind types.LedgerKind, recipeID uuid.UUID) (*RecipeShortView, error)
	// Remove fails with NotFound when the recipe is not in the list.
	Remove(ctx context.Context, actor Actor, kind types.LedgerKind, recipeID uuid.UUID) error
}

type ledgerService struct {
	db      *gorm.DB
	log     *logger.Logger
	recipes repos.RecipeRepo
	ledger  repos.LedgerRepo
	metrics *observability.Metrics
}

func NewLedgerService(db *gorm.DB, log *logger.Logger, recipes repos.RecipeRepo, ledger repos.LedgerRepo, metrics *observability.Metrics) LedgerService {
	return &ledgerService{
		db:      db,
		log:     log.With("service", "LedgerService"),
		recipes: recipes,
		ledger:  ledger,
		metrics: metrics,
	}
}

var ledgerCodes = map[types.LedgerKind]struct{ present, absent string }{
	types.LedgerFavorite:     {present: "already_in_favorites", absent: "not_in_favorites"},
	types.LedgerShoppingCart: {present: "already_in_shopping_cart", absent: "not_in_shopping_cart"},
}

func (s *ledgerService) Add(ctx context.Context, actor Actor, kind types.LedgerKind, recipeID uuid.UUID) (*RecipeShortView, error) {
	if actor.Anonymous() {
		return nil, unauthorizedError()
	}
	if !kind.Valid() {
		return nil, validationError("invalid_list", "unknown list %q", kind)
	}
	var out RecipeShortView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		recipe, err := s.recipes.GetByIDForUpdate(inner, recipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return notFoundError("recipe_not_found", "recipe %s not found", recipeID)
		}
		exists, err := s.ledger.Exists(inner, kind, actor.UserID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return conflictError(ledgerCodes[kind].present, "recipe %s is already in %s", recipeID, kind)
		}
		if err := s.ledger.Add(inner, kind, actor.UserID, recipeID); err != nil {
			if isDuplicate(err) {
				return conflictError(ledgerCodes[kind].present, "recipe %s is already in %s", recipeID, kind)
			}
			if isMissingReference(err) {
				return notFoundError("recipe_not_found", "recipe %s not found", recipeID)
			}
			return err
		}
		out = newRecipeShortView(recipe)
		return nil
	})
	s.metrics.IncLedger(string(kind), "add", outcome(err))
	if err != nil {
		return nil, passThrough("ledger_write_failed", err)
	}
	s.log.Debug("Recipe added to list", "list", kind, "recipe_id", recipeID, "actor_id", actor.UserID)
	return &out, nil
}

func (s *ledgerService) Remove(ctx context.Context, actor Actor, kind types.LedgerKind, recipeID uuid.UUID) error {
	if actor.Anonymous() {
		return unauthorizedError()
	}
	if !kind.Valid() {
		return validationError("invalid_list", "unknown list %q", kind)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := s.recipes.Exists(inner, recipeID)
		if err != nil {
			return err
		}
		if !exists {
			return notFoundError("recipe_not_found", "recipe %s not found", recipeID)
		}
		n, err := s.ledger.Remove(inner, kind, actor.UserID, recipeID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFoundError(ledgerCodes[kind].absent, "recipe %s is not in %s", recipeID, kind)
		}
		return nil
	})
	s.metrics.IncLedger(string(kind), "remove", outcome(err))
	if err != nil {
		return passThrough("ledger_write_failed", err)
	}
	s.log.Debug("Recipe removed from list", "list", kind, "recipe_id", recipeID, "actor_id", actor.UserID)
	return nil
}
