package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "A",
		LastName:  "B",
		Password:  "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, name, unit string) *types.Ingredient {
	tb.Helper()
	i := &types.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return i
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Tag {
	tb.Helper()
	t := &types.Tag{
		ID:    uuid.New(),
		Name:  slug,
		Slug:  slug,
		Color: fmt.Sprintf("#%06x", uuid.New().ID()&0xffffff),
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return t
}

// SeedRecipe inserts a recipe with the given ingredient amounts and tags.
// createdAt drives the default list ordering.
func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID uuid.UUID, name string, createdAt time.Time, amounts map[uuid.UUID]int, tags ...*types.Tag) *types.Recipe {
	tb.Helper()
	r := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        name,
		Image:       "/media/recipes/images/" + name + ".png",
		Text:        "text",
		CookingTime: 10,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	for ingredientID, amount := range amounts {
		ri := &types.RecipeIngredient{ID: uuid.New(), RecipeID: r.ID, IngredientID: ingredientID, Amount: amount}
		if err := tx.WithContext(ctx).Omit(clause.Associations).Create(ri).Error; err != nil {
			tb.Fatalf("seed recipe ingredient: %v", err)
		}
	}
	for _, t := range tags {
		if err := tx.WithContext(ctx).Create(&types.RecipeTag{RecipeID: r.ID, TagID: t.ID}).Error; err != nil {
			tb.Fatalf("seed recipe tag: %v", err)
		}
	}
	return r
}

func PtrBool(v bool) *bool { return &v }

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
