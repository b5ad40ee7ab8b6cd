package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
	"github.com/yungbote/foodgram-backend/internal/platform/cache"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// testEnv wires every service against one test database. Services commit their own
// transactions, so seeded names carry a per-test suffix to stay unique on a shared Postgres.
type testEnv struct {
	ctx    context.Context
	db     *gorm.DB
	suffix string

	users   repos.UserRepo
	subs    repos.SubscriptionRepo
	catalog repos.CatalogRepo
	recipes repos.RecipeRepo
	ledger  repos.LedgerRepo
	list    repos.ShoppingListRepo

	catalogSvc      CatalogService
	recipeSvc       RecipeService
	ledgerSvc       LedgerService
	subscriptionSvc SubscriptionService
	userSvc         UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	e := &testEnv{
		ctx:     context.Background(),
		db:      db,
		suffix:  uuid.NewString()[:8],
		users:   repos.NewUserRepo(db, log),
		subs:    repos.NewSubscriptionRepo(db, log),
		catalog: repos.NewCatalogRepo(db, log),
		recipes: repos.NewRecipeRepo(db, log),
		ledger:  repos.NewLedgerRepo(db, log),
		list:    repos.NewShoppingListRepo(db, log),
	}
	e.catalogSvc = NewCatalogService(db, log, e.catalog, cache.Noop{}, time.Minute, nil)
	e.recipeSvc = NewRecipeService(db, log, e.recipes, e.catalog, e.ledger, e.subs)
	e.ledgerSvc = NewLedgerService(db, log, e.recipes, e.ledger, nil)
	e.subscriptionSvc = NewSubscriptionService(db, log, e.users, e.subs, e.recipes, nil, 3)
	e.userSvc = NewUserService(db, log, e.users, e.subs)
	return e
}

func (e *testEnv) name(s string) string { return s + "-" + e.suffix }

func (e *testEnv) user(t *testing.T, username string) Actor {
	t.Helper()
	u := testutil.SeedUser(t, e.ctx, e.db, e.name(username))
	return Actor{UserID: u.ID}
}

func (e *testEnv) ingredient(t *testing.T, name, unit string) *types.Ingredient {
	t.Helper()
	return testutil.SeedIngredient(t, e.ctx, e.db, e.name(name), unit)
}

func (e *testEnv) tag(t *testing.T, slug string) *types.Tag {
	t.Helper()
	return testutil.SeedTag(t, e.ctx, e.db, e.name(slug))
}

func (e *testEnv) recipe(t *testing.T, author Actor, name string, amounts map[uuid.UUID]int, tags ...*types.Tag) *types.Recipe {
	t.Helper()
	return testutil.SeedRecipe(t, e.ctx, e.db, author.UserID, e.name(name), time.Now().UTC(), amounts, tags...)
}

func wantAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d %s, got nil", status, code)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("expected %d %s, got %d %s (%v)", status, code, ae.Status, ae.Code, err)
	}
}

func wantErrContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil || !strings.Contains(err.Error(), substr) {
		t.Fatalf("expected error containing %q, got %v", substr, err)
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return testutil.Logger(t)
}
