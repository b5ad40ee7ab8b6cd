package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const previewConcurrency = 4

type SubscriptionService interface {
	Subscribe(ctx context.Context, actor Actor, authorID uuid.UUID, recipesLimit int) (*SubscriptionView, error)
	Unsubscribe(ctx context.Context, actor Actor, authorID uuid.UUID) error
	// List pages the authors the actor follows, each with a preview of their newest recipes.
	List(ctx context.Context, actor Actor, page Page, recipesLimit int) (*Paged[SubscriptionView], error)
}

type subscriptionService struct {
	db           *gorm.DB
	log          *logger.Logger
	users        repos.UserRepo
	subs         repos.SubscriptionRepo
	recipes      repos.RecipeRepo
	metrics      *observability.Metrics
	previewLimit int
}

func NewSubscriptionService(db *gorm.DB, log *logger.Logger, users repos.UserRepo, subs repos.SubscriptionRepo, recipes repos.RecipeRepo, metrics *observability.Metrics, previewLimit int) SubscriptionService {
	if previewLimit <= 0 {
		previewLimit = 10
	}
	return &subscriptionService{
		db:           db,
		log:          log.With("service", "SubscriptionService"),
		users:        users,
		subs:         subs,
		recipes:      recipes,
		metrics:      metrics,
		previewLimit: previewLimit,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, actor Actor, authorID uuid.UUID, recipesLimit int) (*SubscriptionView, error) {
	if actor.Anonymous() {
		return nil, unauthorizedError()
	}
	if authorID == actor.UserID {
		s.metrics.IncLedger("subscription", "add", "invalid")
		return nil, validationError("self_subscription", "cannot subscribe to yourself")
	}
	var author *types.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		u, err := s.users.GetByID(inner, authorID)
		if err != nil {
			return err
		}
		if u == nil {
			return notFoundError("user_not_found", "user %s not found", authorID)
		}
		exists, err := s.subs.Exists(inner, actor.UserID, authorID)
		if err != nil {
			return err
		}
		if exists {
			return conflictError("already_subscribed", "already subscribed to %s", authorID)
		}
		if err := s.subs.Create(inner, &types.Subscription{
			ID:        uuid.New(),
			UserID:    actor.UserID,
			AuthorID:  authorID,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			if isDuplicate(err) {
				return conflictError("already_subscribed", "already subscribed to %s", authorID)
			}
			if isMissingReference(err) {
				return notFoundError("user_not_found", "user %s not found", authorID)
			}
			return err
		}
		author = u
		return nil
	})
	s.metrics.IncLedger("subscription", "add", outcome(err))
	if err != nil {
		return nil, passThrough("subscription_write_failed", err)
	}
	s.log.Debug("Subscribed", "actor_id", actor.UserID, "author_id", authorID)

	views, err := s.withPreviews(ctx, []*types.User{author}, recipesLimit)
	if err != nil {
		return nil, internalError("subscription_read_failed", err)
	}
	return &views[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, actor Actor, authorID uuid.UUID) error {
	if actor.Anonymous() {
		return unauthorizedError()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := s.users.Exists(inner, authorID)
		if err != nil {
			return err
		}
		if !exists {
			return notFoundError("user_not_found", "user %s not found", authorID)
		}
		n, err := s.subs.Delete(inner, actor.UserID, authorID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFoundError("not_subscribed", "not subscribed to %s", authorID)
		}
		return nil
	})
	s.metrics.IncLedger("subscription", "remove", outcome(err))
	if err != nil {
		return passThrough("subscription_write_failed", err)
	}
	s.log.Debug("Unsubscribed", "actor_id", actor.UserID, "author_id", authorID)
	return nil
}

func (s *subscriptionService) List(ctx context.Context, actor Actor, page Page, recipesLimit int) (*Paged[SubscriptionView], error) {
	if actor.Anonymous() {
		return nil, unauthorizedError()
	}
	authors, total, err := s.subs.ListAuthors(dbctx.Context{Ctx: ctx}, actor.UserID, page.Offset(), page.Size)
	if err != nil {
		return nil, internalError("subscription_read_failed", err)
	}
	views, err := s.withPreviews(ctx, authors, recipesLimit)
	if err != nil {
		return nil, internalError("subscription_read_failed", err)
	}
	return &Paged[SubscriptionView]{Count: total, Results: views}, nil
}

// withPreviews builds subscription views for followed authors. Recipe previews are fetched concurrently.
func (s *subscriptionService) withPreviews(ctx context.Context, authors []*types.User, recipesLimit int) ([]SubscriptionView, error) {
	if recipesLimit <= 0 {
		recipesLimit = s.previewLimit
	}
	out := make([]SubscriptionView, len(authors))
	if len(authors) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	counts, err := s.recipes.CountByAuthors(dbctx.Context{Ctx: ctx}, ids)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(previewConcurrency)
	for i, a := range authors {
		i, a := i, a
		g.Go(func() error {
			recipes, err := s.recipes.ListByAuthor(dbctx.Context{Ctx: gctx}, a.ID, recipesLimit)
			if err != nil {
				return err
			}
			previews := make([]RecipeShortView, 0, len(recipes))
			for _, r := range recipes {
				previews = append(previews, newRecipeShortView(r))
			}
			out[i] = SubscriptionView{
				UserView:     newUserView(a, true),
				Recipes:      previews,
				RecipesCount: counts[a.ID],
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
