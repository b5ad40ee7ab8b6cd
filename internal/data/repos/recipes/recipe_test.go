package recipes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestRecipeRepoListFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	alice := testutil.SeedUser(t, ctx, tx, "alice")
	bob := testutil.SeedUser(t, ctx, tx, "bob")
	breakfast := testutil.SeedTag(t, ctx, tx, "breakfast")
	dinner := testutil.SeedTag(t, ctx, tx, "dinner")
	egg := testutil.SeedIngredient(t, ctx, tx, "egg", "pcs")

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r1 := testutil.SeedRecipe(t, ctx, tx, alice.ID, "omelette", t0, map[uuid.UUID]int{egg.ID: 3}, breakfast)
	r2 := testutil.SeedRecipe(t, ctx, tx, alice.ID, "steak", t0.Add(time.Hour), nil, dinner)
	r3 := testutil.SeedRecipe(t, ctx, tx, bob.ID, "pancakes", t0.Add(2*time.Hour), nil, breakfast, dinner)

	ledger := NewLedgerRepo(db, testutil.Logger(t))
	if err := ledger.Add(dbc, types.LedgerFavorite, bob.ID, r1.ID); err != nil {
		t.Fatalf("Add favorite: %v", err)
	}
	if err := ledger.Add(dbc, types.LedgerShoppingCart, bob.ID, r2.ID); err != nil {
		t.Fatalf("Add cart: %v", err)
	}

	repo := NewRecipeRepo(db, testutil.Logger(t))

	cases := []struct {
		name string
		q    RecipeQuery
		want []uuid.UUID
	}{
		{"all newest first", RecipeQuery{Limit: 10}, []uuid.UUID{r3.ID, r2.ID, r1.ID}},
		{"author", RecipeQuery{AuthorID: &alice.ID, Limit: 10}, []uuid.UUID{r2.ID, r1.ID}},
		{"tag", RecipeQuery{TagSlugs: []string{"breakfast"}, Limit: 10}, []uuid.UUID{r3.ID, r1.ID}},
		{"any of tags", RecipeQuery{TagSlugs: []string{"breakfast", "dinner"}, Limit: 10}, []uuid.UUID{r3.ID, r2.ID, r1.ID}},
		{"favorited", RecipeQuery{FavoritedBy: &bob.ID, Limit: 10}, []uuid.UUID{r1.ID}},
		{"in cart", RecipeQuery{InCartOf: &bob.ID, Limit: 10}, []uuid.UUID{r2.ID}},
		{"page", RecipeQuery{Offset: 1, Limit: 1}, []uuid.UUID{r2.ID}},
	}
	for _, tc := range cases {
		got, total, err := repo.List(dbc, tc.q)
		if err != nil {
			t.Fatalf("%s: List: %v", tc.name, err)
		}
		if tc.name != "page" && int(total) != len(tc.want) {
			t.Fatalf("%s: total=%d want %d", tc.name, total, len(tc.want))
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %d recipes want %d", tc.name, len(got), len(tc.want))
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Fatalf("%s: position %d got %s want %s", tc.name, i, got[i].Name, tc.want[i])
			}
		}
	}

	full, err := repo.GetByID(dbc, r3.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if full.Author == nil || full.Author.ID != bob.ID || len(full.Tags) != 2 || full.Tags[0].Slug != "breakfast" {
		t.Fatalf("GetByID did not load details: %+v", full)
	}
}

func TestRecipeRepoReplaceAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	author := testutil.SeedUser(t, ctx, tx, "cook")
	eater := testutil.SeedUser(t, ctx, tx, "eater")
	a := testutil.SeedIngredient(t, ctx, tx, "flour", "g")
	b := testutil.SeedIngredient(t, ctx, tx, "sugar", "g")
	tagA := testutil.SeedTag(t, ctx, tx, "sweet")
	tagB := testutil.SeedTag(t, ctx, tx, "baking")
	r := testutil.SeedRecipe(t, ctx, tx, author.ID, "cake", time.Now(), map[uuid.UUID]int{a.ID: 100}, tagA)

	repo := NewRecipeRepo(db, testutil.Logger(t))
	if err := repo.ReplaceIngredients(dbc, r.ID, []*types.RecipeIngredient{{IngredientID: b.ID, Amount: 7}}); err != nil {
		t.Fatalf("ReplaceIngredients: %v", err)
	}
	if err := repo.ReplaceTags(dbc, r, []*types.Tag{tagB}); err != nil {
		t.Fatalf("ReplaceTags: %v", err)
	}
	got, err := repo.GetByID(dbc, r.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].IngredientID != b.ID || got.Ingredients[0].Amount != 7 {
		t.Fatalf("ingredients not replaced: %+v", got.Ingredients)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != tagB.ID {
		t.Fatalf("tags not replaced: %+v", got.Tags)
	}

	ledger := NewLedgerRepo(db, testutil.Logger(t))
	if err := ledger.Add(dbc, types.LedgerFavorite, eater.ID, r.ID); err != nil {
		t.Fatalf("Add favorite: %v", err)
	}
	if err := ledger.Add(dbc, types.LedgerShoppingCart, eater.ID, r.ID); err != nil {
		t.Fatalf("Add cart: %v", err)
	}

	n, err := repo.Delete(dbc, r.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	for _, model := range []interface{}{&types.RecipeIngredient{}, &types.RecipeTag{}, &types.Favorite{}, &types.ShoppingCartEntry{}} {
		var count int64
		if err := tx.Model(model).Where("recipe_id = ?", r.ID).Count(&count).Error; err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if count != 0 {
			t.Fatalf("%T rows survived recipe delete: %d", model, count)
		}
	}
	if gone, _ := repo.GetByID(dbc, r.ID); gone != nil {
		t.Fatalf("recipe still present after delete")
	}
}

func TestRecipeRepoCountByAuthors(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	a := testutil.SeedUser(t, ctx, tx, "prolific")
	b := testutil.SeedUser(t, ctx, tx, "quiet")
	now := time.Now()
	for i := 0; i < 3; i++ {
		testutil.SeedRecipe(t, ctx, tx, a.ID, "dish"+string(rune('a'+i)), now.Add(time.Duration(i)*time.Minute), nil)
	}

	repo := NewRecipeRepo(db, testutil.Logger(t))
	counts, err := repo.CountByAuthors(dbc, []uuid.UUID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("CountByAuthors: %v", err)
	}
	if counts[a.ID] != 3 || counts[b.ID] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	latest, err := repo.ListByAuthor(dbc, a.ID, 2)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(latest) != 2 || latest[0].Name != "dishc" {
		t.Fatalf("expected two newest recipes, got %+v", latest)
	}
}
