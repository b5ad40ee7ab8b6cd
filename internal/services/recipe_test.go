package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func validInput(ingredients []IngredientAmount, tags ...*types.Tag) RecipeInput {
	in := RecipeInput{
		Name:        "Борщ",
		Image:       "/media/recipes/images/borsch.png",
		Text:        "Варить долго.",
		CookingTime: 90,
		Ingredients: ingredients,
	}
	for _, t := range tags {
		in.TagIDs = append(in.TagIDs, t.ID)
	}
	return in
}

func TestRecipeCreateAndGet(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	beet := e.ingredient(t, "beet", "г")
	salt := e.ingredient(t, "salt", "г")
	lunch := e.tag(t, "lunch")

	view, err := e.recipeSvc.Create(e.ctx, author, validInput([]IngredientAmount{
		{ID: beet.ID, Amount: 300},
		{ID: salt.ID, Amount: 5},
	}, lunch))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Author.ID != author.UserID || view.CookingTime != 90 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Ingredients) != 2 || len(view.Tags) != 1 {
		t.Fatalf("expected 2 ingredients and 1 tag, got %d/%d", len(view.Ingredients), len(view.Tags))
	}
	if view.Ingredients[0].ID != beet.ID || view.Ingredients[0].Amount != 300 {
		t.Fatalf("ingredients not ordered by name: %+v", view.Ingredients)
	}
	if view.IsFavorited || view.IsInShoppingCart {
		t.Fatalf("fresh recipe should carry no ledger flags")
	}

	got, err := e.recipeSvc.Get(e.ctx, Actor{}, view.ID)
	if err != nil {
		t.Fatalf("Get anonymous: %v", err)
	}
	if got.Name != "Борщ" {
		t.Fatalf("Get name=%q", got.Name)
	}
}

func TestRecipeCreateValidation(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	flour := e.ingredient(t, "flour", "г")
	tag := e.tag(t, "bake")
	ok := []IngredientAmount{{ID: flour.ID, Amount: 100}}

	cases := []struct {
		name   string
		actor  Actor
		mutate func(in *RecipeInput)
		status int
		code   string
	}{
		{"anonymous", Actor{}, func(*RecipeInput) {}, http.StatusUnauthorized, "not_authenticated"},
		{"empty_name", author, func(in *RecipeInput) { in.Name = "  " }, http.StatusBadRequest, "name_required"},
		{"long_name", author, func(in *RecipeInput) { in.Name = strings.Repeat("я", types.MaxRecipeNameLength+1) }, http.StatusBadRequest, "name_too_long"},
		{"no_text", author, func(in *RecipeInput) { in.Text = "" }, http.StatusBadRequest, "text_required"},
		{"no_image", author, func(in *RecipeInput) { in.Image = "" }, http.StatusBadRequest, "image_required"},
		{"zero_cooking_time", author, func(in *RecipeInput) { in.CookingTime = 0 }, http.StatusBadRequest, "invalid_cooking_time"},
		{"no_ingredients", author, func(in *RecipeInput) { in.Ingredients = nil }, http.StatusBadRequest, "ingredients_required"},
		{"no_tags", author, func(in *RecipeInput) { in.TagIDs = nil }, http.StatusBadRequest, "tags_required"},
		{"zero_amount", author, func(in *RecipeInput) { in.Ingredients = []IngredientAmount{{ID: flour.ID, Amount: 0}} }, http.StatusBadRequest, "invalid_amount"},
		{"duplicate_ingredient", author, func(in *RecipeInput) {
			in.Ingredients = []IngredientAmount{{ID: flour.ID, Amount: 1}, {ID: flour.ID, Amount: 2}}
		}, http.StatusBadRequest, "duplicate_ingredients"},
		{"duplicate_tag", author, func(in *RecipeInput) { in.TagIDs = []uuid.UUID{tag.ID, tag.ID} }, http.StatusBadRequest, "duplicate_tags"},
		{"unknown_ingredient", author, func(in *RecipeInput) { in.Ingredients = []IngredientAmount{{ID: uuid.New(), Amount: 1}} }, http.StatusNotFound, "ingredient_not_found"},
		{"unknown_tag", author, func(in *RecipeInput) { in.TagIDs = []uuid.UUID{uuid.New()} }, http.StatusNotFound, "tag_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(ok, tag)
			tc.mutate(&in)
			_, err := e.recipeSvc.Create(e.ctx, tc.actor, in)
			wantAPIError(t, err, tc.status, tc.code)
		})
	}

	page, err := e.recipeSvc.List(e.ctx, Actor{}, RecipeFilter{AuthorID: &author.UserID}, Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Count != 0 {
		t.Fatalf("rejected creates must not persist anything, found %d", page.Count)
	}
}

func TestRecipeUpdateReplacesSets(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	a := e.ingredient(t, "a", "г")
	b := e.ingredient(t, "b", "г")
	c := e.ingredient(t, "c", "шт")
	t1 := e.tag(t, "t1")
	t2 := e.tag(t, "t2")

	view, err := e.recipeSvc.Create(e.ctx, author, validInput([]IngredientAmount{{ID: a.ID, Amount: 1}, {ID: b.ID, Amount: 2}}, t1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput([]IngredientAmount{{ID: c.ID, Amount: 7}}, t2)
	in.Name = "Щи"
	in.CookingTime = 30
	updated, err := e.recipeSvc.Update(e.ctx, author, view.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Щи" || updated.CookingTime != 30 {
		t.Fatalf("scalars not replaced: %+v", updated)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].ID != c.ID || updated.Ingredients[0].Amount != 7 {
		t.Fatalf("ingredients not replaced: %+v", updated.Ingredients)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != t2.ID {
		t.Fatalf("tags not replaced: %+v", updated.Tags)
	}

	var rows int64
	if err := e.db.Table("recipe_ingredient").Where("recipe_id = ?", view.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("stale ingredient rows remain: %d", rows)
	}
}

func TestRecipeUpdateFailureLeavesRecipeUntouched(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	a := e.ingredient(t, "a", "г")
	t1 := e.tag(t, "t1")
	view, err := e.recipeSvc.Create(e.ctx, author, validInput([]IngredientAmount{{ID: a.ID, Amount: 1}}, t1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput([]IngredientAmount{{ID: a.ID, Amount: 5}}, t1)
	in.TagIDs = append(in.TagIDs, uuid.New())
	_, err = e.recipeSvc.Update(e.ctx, author, view.ID, in)
	wantAPIError(t, err, http.StatusNotFound, "tag_not_found")

	got, err := e.recipeSvc.Get(e.ctx, author, view.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Ingredients[0].Amount != 1 {
		t.Fatalf("failed update leaked partial state: %+v", got.Ingredients)
	}
}

func TestRecipeMutationPermissions(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	other := e.user(t, "other")
	staffUser := testutil.SeedUser(t, e.ctx, e.db, e.name("staff"))
	staff := Actor{UserID: staffUser.ID, IsStaff: true}
	a := e.ingredient(t, "a", "г")
	t1 := e.tag(t, "t1")
	view, err := e.recipeSvc.Create(e.ctx, author, validInput([]IngredientAmount{{ID: a.ID, Amount: 1}}, t1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	in := validInput([]IngredientAmount{{ID: a.ID, Amount: 2}}, t1)

	_, err = e.recipeSvc.Update(e.ctx, Actor{}, view.ID, in)
	wantAPIError(t, err, http.StatusUnauthorized, "not_authenticated")

	_, err = e.recipeSvc.Update(e.ctx, other, view.ID, in)
	wantAPIError(t, err, http.StatusForbidden, "not_recipe_author")

	err = e.recipeSvc.Delete(e.ctx, other, view.ID)
	wantAPIError(t, err, http.StatusForbidden, "not_recipe_author")

	_, err = e.recipeSvc.Update(e.ctx, other, uuid.New(), in)
	wantAPIError(t, err, http.StatusNotFound, "recipe_not_found")

	// permission is checked before payload validation
	bad := in
	bad.CookingTime = 0
	_, err = e.recipeSvc.Update(e.ctx, other, view.ID, bad)
	wantAPIError(t, err, http.StatusForbidden, "not_recipe_author")

	if _, err := e.recipeSvc.Update(e.ctx, staff, view.ID, in); err != nil {
		t.Fatalf("staff update: %v", err)
	}
	if err := e.recipeSvc.Delete(e.ctx, staff, view.ID); err != nil {
		t.Fatalf("staff delete: %v", err)
	}
	_, err = e.recipeSvc.Get(e.ctx, author, view.ID)
	wantAPIError(t, err, http.StatusNotFound, "recipe_not_found")
}

func TestRecipeDeleteCascades(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	fan := e.user(t, "fan")
	a := e.ingredient(t, "a", "г")
	t1 := e.tag(t, "t1")
	r := e.recipe(t, author, "soup", map[uuid.UUID]int{a.ID: 3}, t1)

	if _, err := e.ledgerSvc.Add(e.ctx, fan, types.LedgerFavorite, r.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if _, err := e.ledgerSvc.Add(e.ctx, fan, types.LedgerShoppingCart, r.ID); err != nil {
		t.Fatalf("cart: %v", err)
	}
	if err := e.recipeSvc.Delete(e.ctx, author, r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	dbc := dbctx.Context{Ctx: e.ctx}
	for _, kind := range []types.LedgerKind{types.LedgerFavorite, types.LedgerShoppingCart} {
		ok, err := e.ledger.Exists(dbc, kind, fan.UserID, r.ID)
		if err != nil {
			t.Fatalf("Exists(%s): %v", kind, err)
		}
		if ok {
			t.Fatalf("%s entry survived recipe delete", kind)
		}
	}
	for _, table := range []string{"recipe_ingredient", "recipe_tag"} {
		var n int64
		if err := e.db.Table(table).Where("recipe_id = ?", r.ID).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Fatalf("%s rows survived recipe delete: %d", table, n)
		}
	}
}

func TestRecipeListFilters(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	reader := e.user(t, "reader")
	a := e.ingredient(t, "a", "г")
	breakfast := e.tag(t, "breakfast")
	dinner := e.tag(t, "dinner")
	r1 := e.recipe(t, author, "r1", map[uuid.UUID]int{a.ID: 1}, breakfast)
	e.recipe(t, author, "r2", map[uuid.UUID]int{a.ID: 1}, dinner)
	if _, err := e.ledgerSvc.Add(e.ctx, reader, types.LedgerFavorite, r1.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	page := Page{Number: 1, Size: 10}
	byAuthor := RecipeFilter{AuthorID: &author.UserID}

	all, err := e.recipeSvc.List(e.ctx, Actor{}, byAuthor, page)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.Count != 2 {
		t.Fatalf("expected 2 recipes, got %d", all.Count)
	}

	// the favorite predicate is ignored for anonymous callers
	anon, err := e.recipeSvc.List(e.ctx, Actor{}, RecipeFilter{AuthorID: &author.UserID, IsFavorited: testutil.PtrBool(true)}, page)
	if err != nil {
		t.Fatalf("List anonymous favorites: %v", err)
	}
	if anon.Count != 2 {
		t.Fatalf("anonymous favorite filter should be a no-op, got %d", anon.Count)
	}

	favs, err := e.recipeSvc.List(e.ctx, reader, RecipeFilter{AuthorID: &author.UserID, IsFavorited: testutil.PtrBool(true)}, page)
	if err != nil {
		t.Fatalf("List favorites: %v", err)
	}
	if favs.Count != 1 || favs.Results[0].ID != r1.ID || !favs.Results[0].IsFavorited {
		t.Fatalf("unexpected favorites page: %+v", favs)
	}

	tagged, err := e.recipeSvc.List(e.ctx, reader, RecipeFilter{TagSlugs: []string{dinner.Slug}}, page)
	if err != nil {
		t.Fatalf("List by tag: %v", err)
	}
	if tagged.Count != 1 || tagged.Results[0].IsFavorited {
		t.Fatalf("unexpected tag page: %+v", tagged)
	}
}
