package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
)

func TestSubscribeLifecycle(t *testing.T) {
	e := newTestEnv(t)
	reader := e.user(t, "reader")
	author := e.user(t, "author")
	a := e.ingredient(t, "a", "г")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var newest uuid.UUID
	for i := 0; i < 5; i++ {
		r := testutil.SeedRecipe(t, e.ctx, e.db, author.UserID, e.name("r")+string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour), map[uuid.UUID]int{a.ID: 1})
		newest = r.ID
	}

	view, err := e.subscriptionSvc.Subscribe(e.ctx, reader, author.UserID, 2)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if view.ID != author.UserID || !view.IsSubscribed {
		t.Fatalf("unexpected subscription view: %+v", view.UserView)
	}
	if view.RecipesCount != 5 || len(view.Recipes) != 2 || view.Recipes[0].ID != newest {
		t.Fatalf("preview: count=%d len=%d first=%v", view.RecipesCount, len(view.Recipes), view.Recipes)
	}

	_, err = e.subscriptionSvc.Subscribe(e.ctx, reader, author.UserID, 0)
	wantAPIError(t, err, http.StatusConflict, "already_subscribed")

	page, err := e.subscriptionSvc.List(e.ctx, reader, Page{Number: 1, Size: 10}, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// preview limit falls back to the configured default of 3
	if page.Count != 1 || len(page.Results) != 1 || len(page.Results[0].Recipes) != 3 {
		t.Fatalf("unexpected page: count=%d results=%+v", page.Count, page.Results)
	}

	recipe, err := e.recipeSvc.Get(e.ctx, reader, newest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !recipe.Author.IsSubscribed {
		t.Fatalf("recipe author should be marked as subscribed")
	}

	if err := e.subscriptionSvc.Unsubscribe(e.ctx, reader, author.UserID); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	err = e.subscriptionSvc.Unsubscribe(e.ctx, reader, author.UserID)
	wantAPIError(t, err, http.StatusNotFound, "not_subscribed")
}

func TestSubscribeErrors(t *testing.T) {
	e := newTestEnv(t)
	reader := e.user(t, "reader")

	_, err := e.subscriptionSvc.Subscribe(e.ctx, reader, reader.UserID, 0)
	wantAPIError(t, err, http.StatusBadRequest, "self_subscription")

	_, err = e.subscriptionSvc.Subscribe(e.ctx, reader, uuid.New(), 0)
	wantAPIError(t, err, http.StatusNotFound, "user_not_found")

	_, err = e.subscriptionSvc.Subscribe(e.ctx, Actor{}, reader.UserID, 0)
	wantAPIError(t, err, http.StatusUnauthorized, "not_authenticated")

	_, err = e.subscriptionSvc.List(e.ctx, Actor{}, Page{Number: 1, Size: 10}, 0)
	wantAPIError(t, err, http.StatusUnauthorized, "not_authenticated")
}
