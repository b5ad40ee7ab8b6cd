package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type IngredientAmount struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// RecipeInput is the full writable state of a recipe. Updates replace every field.
type RecipeInput struct {
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
	TagIDs      []uuid.UUID        `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

// RecipeFilter narrows List. IsFavorited and IsInShoppingCart only apply to a
// non-anonymous actor and only when true.
type RecipeFilter struct {
	AuthorID         *uuid.UUID
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
}

type RecipeService interface {
	Create(ctx context.Context, actor Actor, in RecipeInput) (*RecipeView, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in RecipeInput) (*RecipeView, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*RecipeView, error)
	List(ctx context.Context, actor Actor, filter RecipeFilter, page Page) (*Paged[RecipeView], error)
}

type recipeService struct {
	db      *gorm.DB
	log     *logger.Logger
	recipes repos.RecipeRepo
	catalog repos.CatalogRepo
	ledger  repos.LedgerRepo
	subs    repos.SubscriptionRepo
}

func NewRecipeService(db *gorm.DB, log *logger.Logger, recipes repos.RecipeRepo, catalog repos.CatalogRepo, ledger repos.LedgerRepo, subs repos.SubscriptionRepo) RecipeService {
	return &recipeService{
		db:      db,
		log:     log.With("service", "RecipeService"),
		recipes: recipes,
		catalog: catalog,
		ledger:  ledger,
		subs:    subs,
	}
}

func (s *recipeService) Create(ctx context.Context, actor Actor, in RecipeInput) (*RecipeView, error) {
	if err := AuthorizeRecipe(RecipeOpCreate, actor, nil); err != nil {
		return nil, err
	}
	in, err := normalizeRecipeInput(in)
	if err != nil {
		return nil, err
	}

	recipe := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    actor.UserID,
		Name:        in.Name,
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		tags, err := s.resolveRefs(inner, in)
		if err != nil {
			return err
		}
		if err := s.recipes.Create(inner, recipe); err != nil {
			return err
		}
		if err := s.recipes.ReplaceIngredients(inner, recipe.ID, ingredientRows(in)); err != nil {
			return err
		}
		return s.recipes.ReplaceTags(inner, recipe, tags)
	})
	if err != nil {
		s.log.Warn("Recipe create failed", "actor_id", actor.UserID, "error", err)
		return nil, passThrough("recipe_write_failed", err)
	}
	s.log.Info("Recipe created", "recipe_id", recipe.ID, "author_id", actor.UserID)
	return s.Get(ctx, actor, recipe.ID)
}

func (s *recipeService) Update(ctx context.Context, actor Actor, id uuid.UUID, in RecipeInput) (*RecipeView, error) {
	if actor.Anonymous() {
		return nil, unauthorizedError()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		recipe, err := s.recipes.GetByIDForUpdate(inner, id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return notFoundError("recipe_not_found", "recipe %s not found", id)
		}
		if err := AuthorizeRecipe(RecipeOpUpdate, actor, recipe); err != nil {
			return err
		}
		in, err := normalizeRecipeInput(in)
		if err != nil {
			return err
		}
		tags, err := s.resolveRefs(inner, in)
		if err != nil {
			return err
		}
		if err := s.recipes.UpdateFields(inner, id, map[string]interface{}{
			"name":         in.Name,
			"image":        in.Image,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}); err != nil {
			return err
		}
		if err := s.recipes.ReplaceIngredients(inner, id, ingredientRows(in)); err != nil {
			return err
		}
		return s.recipes.ReplaceTags(inner, recipe, tags)
	})
	if err != nil {
		s.log.Warn("Recipe update failed", "recipe_id", id, "actor_id", actor.UserID, "error", err)
		return nil, passThrough("recipe_write_failed", err)
	}
	s.log.Info("Recipe updated", "recipe_id", id, "actor_id", actor.UserID)
	return s.Get(ctx, actor, id)
}

func (s *recipeService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.Anonymous() {
		return unauthorizedError()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		recipe, err := s.recipes.GetByIDForUpdate(inner, id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return notFoundError("recipe_not_found", "recipe %s not found", id)
		}
		if err := AuthorizeRecipe(RecipeOpDelete, actor, recipe); err != nil {
			return err
		}
		_, err = s.recipes.Delete(inner, id)
		return err
	})
	if err != nil {
		return passThrough("recipe_write_failed", err)
	}
	s.log.Info("Recipe deleted", "recipe_id", id, "actor_id", actor.UserID)
	return nil
}

func (s *recipeService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*RecipeView, error) {
	if err := AuthorizeRecipe(RecipeOpRetrieve, actor, nil); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	recipe, err := s.recipes.GetByID(dbc, id)
	if err != nil {
		return nil, internalError("recipe_read_failed", err)
	}
	if recipe == nil {
		return nil, notFoundError("recipe_not_found", "recipe %s not found", id)
	}
	views, err := s.views(dbc, actor, []*types.Recipe{recipe})
	if err != nil {
		return nil, internalError("recipe_read_failed", err)
	}
	return &views[0], nil
}

func (s *recipeService) List(ctx context.Context, actor Actor, filter RecipeFilter, page Page) (*Paged[RecipeView], error) {
	if err := AuthorizeRecipe(RecipeOpList, actor, nil); err != nil {
		return nil, err
	}
	q := repos.RecipeQuery{
		AuthorID: filter.AuthorID,
		TagSlugs: filter.TagSlugs,
		Offset:   page.Offset(),
		Limit:    page.Size,
	}
	if !actor.Anonymous() {
		if filter.IsFavorited != nil && *filter.IsFavorited {
			q.FavoritedBy = &actor.UserID
		}
		if filter.IsInShoppingCart != nil && *filter.IsInShoppingCart {
			q.InCartOf = &actor.UserID
		}
	}
	dbc := dbctx.Context{Ctx: ctx}
	recipes, total, err := s.recipes.List(dbc, q)
	if err != nil {
		return nil, internalError("recipe_read_failed", err)
	}
	views, err := s.views(dbc, actor, recipes)
	if err != nil {
		return nil, internalError("recipe_read_failed", err)
	}
	return &Paged[RecipeView]{Count: total, Results: views}, nil
}

// views attaches the actor-relative flags to a batch of fully loaded recipes.
func (s *recipeService) views(dbc dbctx.Context, actor Actor, recipes []*types.Recipe) ([]RecipeView, error) {
	out := make([]RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return out, nil
	}
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}
	flags := recipeFlags{}
	var err error
	if flags.favorited, err = s.ledger.Marked(dbc, types.LedgerFavorite, actor.UserID, recipeIDs); err != nil {
		return nil, err
	}
	if flags.inCart, err = s.ledger.Marked(dbc, types.LedgerShoppingCart, actor.UserID, recipeIDs); err != nil {
		return nil, err
	}
	if flags.subscribed, err = s.subs.Following(dbc, actor.UserID, authorIDs); err != nil {
		return nil, err
	}
	for _, r := range recipes {
		out = append(out, newRecipeView(r, flags))
	}
	return out, nil
}

// resolveRefs checks that every referenced ingredient and tag exists and returns the tags.
func (s *recipeService) resolveRefs(dbc dbctx.Context, in RecipeInput) ([]*types.Tag, error) {
	ingredientIDs := make([]uuid.UUID, 0, len(in.Ingredients))
	for _, ia := range in.Ingredients {
		ingredientIDs = append(ingredientIDs, ia.ID)
	}
	found, err := s.catalog.GetIngredientsByIDs(dbc, ingredientIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ingredientIDs) {
		known := make(map[uuid.UUID]bool, len(found))
		for _, i := range found {
			known[i.ID] = true
		}
		for _, id := range ingredientIDs {
			if !known[id] {
				return nil, notFoundError("ingredient_not_found", "ingredient %s not found", id)
			}
		}
	}
	tags, err := s.catalog.GetTagsByIDs(dbc, in.TagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(in.TagIDs) {
		known := make(map[uuid.UUID]bool, len(tags))
		for _, t := range tags {
			known[t.ID] = true
		}
		for _, id := range in.TagIDs {
			if !known[id] {
				return nil, notFoundError("tag_not_found", "tag %s not found", id)
			}
		}
	}
	return tags, nil
}

func normalizeRecipeInput(in RecipeInput) (RecipeInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Text = strings.TrimSpace(in.Text)
	in.Image = strings.TrimSpace(in.Image)
	switch {
	case in.Name == "":
		return in, validationError("name_required", "name is required")
	case utf8.RuneCountInString(in.Name) > types.MaxRecipeNameLength:
		return in, validationError("name_too_long", "name is longer than %d characters", types.MaxRecipeNameLength)
	case in.Text == "":
		return in, validationError("text_required", "text is required")
	case in.Image == "":
		return in, validationError("image_required", "image is required")
	case in.CookingTime < 1:
		return in, validationError("invalid_cooking_time", "cooking_time must be at least 1")
	case len(in.Ingredients) == 0:
		return in, validationError("ingredients_required", "at least one ingredient is required")
	case len(in.TagIDs) == 0:
		return in, validationError("tags_required", "at least one tag is required")
	}
	seenIngredients := make(map[uuid.UUID]bool, len(in.Ingredients))
	for _, ia := range in.Ingredients {
		if ia.Amount < 1 {
			return in, validationError("invalid_amount", "amount of ingredient %s must be at least 1", ia.ID)
		}
		if seenIngredients[ia.ID] {
			return in, validationError("duplicate_ingredients", "ingredient %s is listed twice", ia.ID)
		}
		seenIngredients[ia.ID] = true
	}
	seenTags := make(map[uuid.UUID]bool, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if seenTags[id] {
			return in, validationError("duplicate_tags", "tag %s is listed twice", id)
		}
		seenTags[id] = true
	}
	return in, nil
}

func ingredientRows(in RecipeInput) []*types.RecipeIngredient {
	rows := make([]*types.RecipeIngredient, 0, len(in.Ingredients))
	for _, ia := range in.Ingredients {
		rows = append(rows, &types.RecipeIngredient{ID: uuid.New(), IngredientID: ia.ID, Amount: ia.Amount})
	}
	return rows
}
