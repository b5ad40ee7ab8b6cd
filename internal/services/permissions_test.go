package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func TestAuthorizeRecipe(t *testing.T) {
	author := Actor{UserID: uuid.New()}
	other := Actor{UserID: uuid.New()}
	staff := Actor{UserID: uuid.New(), IsStaff: true}
	recipe := &types.Recipe{ID: uuid.New(), AuthorID: author.UserID}

	cases := []struct {
		name   string
		op     RecipeOp
		actor  Actor
		recipe *types.Recipe
		status int
		code   string
	}{
		{"list_anonymous", RecipeOpList, Actor{}, nil, 0, ""},
		{"retrieve_anonymous", RecipeOpRetrieve, Actor{}, recipe, 0, ""},
		{"create_anonymous", RecipeOpCreate, Actor{}, nil, http.StatusUnauthorized, "not_authenticated"},
		{"create_user", RecipeOpCreate, other, nil, 0, ""},
		{"update_author", RecipeOpUpdate, author, recipe, 0, ""},
		{"update_other", RecipeOpUpdate, other, recipe, http.StatusForbidden, "not_recipe_author"},
		{"update_staff", RecipeOpUpdate, staff, recipe, 0, ""},
		{"update_anonymous", RecipeOpUpdate, Actor{}, recipe, http.StatusUnauthorized, "not_authenticated"},
		{"update_missing", RecipeOpUpdate, author, nil, http.StatusNotFound, "recipe_not_found"},
		{"delete_other", RecipeOpDelete, other, recipe, http.StatusForbidden, "not_recipe_author"},
		{"delete_staff", RecipeOpDelete, staff, recipe, 0, ""},
		{"unknown_op", RecipeOp(99), staff, recipe, http.StatusForbidden, "unknown_operation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeRecipe(tc.op, tc.actor, tc.recipe)
			if tc.status == 0 {
				if err != nil {
					t.Fatalf("AuthorizeRecipe(%s) = %v, want nil", tc.op, err)
				}
				return
			}
			wantAPIError(t, err, tc.status, tc.code)
		})
	}
}

func TestRecipeOpString(t *testing.T) {
	if RecipeOpDelete.String() != "delete" || RecipeOp(42).String() != "unknown" {
		t.Fatalf("unexpected op names: %s %s", RecipeOpDelete, RecipeOp(42))
	}
}
