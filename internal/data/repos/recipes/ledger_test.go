package recipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestLedgerRepo(t *testing.T) {
	for _, kind := range []types.LedgerKind{types.LedgerFavorite, types.LedgerShoppingCart} {
		t.Run(string(kind), func(t *testing.T) {
			db := testutil.DB(t)
			tx := testutil.Tx(t, db)
			ctx := context.Background()
			dbc := dbctx.Context{Ctx: ctx, Tx: tx}

			u := testutil.SeedUser(t, ctx, tx, "ledger-"+string(kind))
			r := testutil.SeedRecipe(t, ctx, tx, u.ID, "soup-"+string(kind), time.Now(), nil)
			other := testutil.SeedRecipe(t, ctx, tx, u.ID, "salad-"+string(kind), time.Now(), nil)

			repo := NewLedgerRepo(db, testutil.Logger(t))
			if err := repo.Add(dbc, kind, u.ID, r.ID); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if err := repo.Add(dbc, kind, u.ID, r.ID); !errors.Is(err, gorm.ErrDuplicatedKey) {
				t.Fatalf("duplicate Add err=%v, want gorm.ErrDuplicatedKey", err)
			}
			if testutil.Shared() {
				// Postgres aborts the transaction after a unique violation.
				return
			}

			ok, err := repo.Exists(dbc, kind, u.ID, r.ID)
			if err != nil || !ok {
				t.Fatalf("Exists = %v, %v", ok, err)
			}
			marked, err := repo.Marked(dbc, kind, u.ID, []uuid.UUID{r.ID, other.ID})
			if err != nil {
				t.Fatalf("Marked: %v", err)
			}
			if !marked[r.ID] || marked[other.ID] {
				t.Fatalf("unexpected marked set: %v", marked)
			}

			n, err := repo.Remove(dbc, kind, u.ID, r.ID)
			if err != nil || n != 1 {
				t.Fatalf("Remove: n=%d err=%v", n, err)
			}
			n, err = repo.Remove(dbc, kind, u.ID, r.ID)
			if err != nil || n != 0 {
				t.Fatalf("second Remove: n=%d err=%v", n, err)
			}
		})
	}
}

func TestLedgerRepoUnknownKind(t *testing.T) {
	db := testutil.DB(t)
	repo := NewLedgerRepo(db, testutil.Logger(t))
	if err := repo.Add(dbctx.Context{Ctx: context.Background()}, types.LedgerKind("wishlist"), uuid.New(), uuid.New()); err == nil {
		t.Fatalf("expected error for unknown ledger kind")
	}
}
