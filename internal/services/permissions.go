package services

import (
	types "github.com/yungbote/foodgram-backend/internal/domain"
)

// RecipeOp enumerates what an actor can do with a recipe.
type RecipeOp int

const (
	RecipeOpList RecipeOp = iota
	RecipeOpRetrieve
	RecipeOpCreate
	RecipeOpUpdate
	RecipeOpDelete
)

func (op RecipeOp) String() string {
	switch op {
	case RecipeOpList:
		return "list"
	case RecipeOpRetrieve:
		return "retrieve"
	case RecipeOpCreate:
		return "create"
	case RecipeOpUpdate:
		return "update"
	case RecipeOpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// AuthorizeRecipe decides whether actor may perform op. recipe is required for update and delete.
// Reads are public. Mutations need authorship or the staff role.
func AuthorizeRecipe(op RecipeOp, actor Actor, recipe *types.Recipe) error {
	switch op {
	case RecipeOpList, RecipeOpRetrieve:
		return nil
	case RecipeOpCreate:
		if actor.Anonymous() {
			return unauthorizedError()
		}
		return nil
	case RecipeOpUpdate, RecipeOpDelete:
		if actor.Anonymous() {
			return unauthorizedError()
		}
		if recipe == nil {
			return notFoundError("recipe_not_found", "recipe not found")
		}
		if actor.IsStaff || recipe.AuthorID == actor.UserID {
			return nil
		}
		return permissionError("not_recipe_author", "only the author can %s this recipe", op)
	default:
		return permissionError("unknown_operation", "unknown recipe operation %d", int(op))
	}
}
