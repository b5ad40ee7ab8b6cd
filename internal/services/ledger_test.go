package services

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
)

func TestLedgerAddRemove(t *testing.T) {
	e := newTestEnv(t)
	metrics := observability.NewMetrics()
	svc := NewLedgerService(e.db, testLogger(t), e.recipes, e.ledger, metrics)
	author := e.user(t, "author")
	fan := e.user(t, "fan")
	a := e.ingredient(t, "a", "г")
	r := e.recipe(t, author, "pie", map[uuid.UUID]int{a.ID: 1})

	cases := []struct {
		kind    types.LedgerKind
		present string
		absent  string
	}{
		{types.LedgerFavorite, "already_in_favorites", "not_in_favorites"},
		{types.LedgerShoppingCart, "already_in_shopping_cart", "not_in_shopping_cart"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			short, err := svc.Add(e.ctx, fan, tc.kind, r.ID)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if short.ID != r.ID || short.Name != r.Name || short.CookingTime != r.CookingTime {
				t.Fatalf("unexpected short view: %+v", short)
			}

			_, err = svc.Add(e.ctx, fan, tc.kind, r.ID)
			wantAPIError(t, err, http.StatusConflict, tc.present)

			if err := svc.Remove(e.ctx, fan, tc.kind, r.ID); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			err = svc.Remove(e.ctx, fan, tc.kind, r.ID)
			wantAPIError(t, err, http.StatusNotFound, tc.absent)
		})
	}

	var buf bytes.Buffer
	if err := metrics.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	want := `foodgram_ledger_mutations_total{kind="favorite",action="add",outcome="conflict"} 1`
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("missing %q in:\n%s", want, buf.String())
	}
}

func TestLedgerErrors(t *testing.T) {
	e := newTestEnv(t)
	fan := e.user(t, "fan")
	missing := uuid.New()

	_, err := e.ledgerSvc.Add(e.ctx, Actor{}, types.LedgerFavorite, missing)
	wantAPIError(t, err, http.StatusUnauthorized, "not_authenticated")

	_, err = e.ledgerSvc.Add(e.ctx, fan, types.LedgerFavorite, missing)
	wantAPIError(t, err, http.StatusNotFound, "recipe_not_found")

	err = e.ledgerSvc.Remove(e.ctx, fan, types.LedgerShoppingCart, missing)
	wantAPIError(t, err, http.StatusNotFound, "recipe_not_found")

	_, err = e.ledgerSvc.Add(e.ctx, fan, types.LedgerKind("wishlist"), missing)
	wantAPIError(t, err, http.StatusBadRequest, "invalid_list")
}

func TestLedgerIsPerUser(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	a := e.ingredient(t, "a", "г")
	r := e.recipe(t, author, "pie", map[uuid.UUID]int{a.ID: 1})

	if _, err := e.ledgerSvc.Add(e.ctx, alice, types.LedgerFavorite, r.ID); err != nil {
		t.Fatalf("alice Add: %v", err)
	}
	if _, err := e.ledgerSvc.Add(e.ctx, bob, types.LedgerFavorite, r.ID); err != nil {
		t.Fatalf("bob Add: %v", err)
	}
	got, err := e.recipeSvc.Get(e.ctx, alice, r.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.IsFavorited || got.IsInShoppingCart {
		t.Fatalf("unexpected flags for alice: fav=%v cart=%v", got.IsFavorited, got.IsInShoppingCart)
	}
}
