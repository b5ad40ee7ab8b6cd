package domain

import (
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

type (
	User         = user.User
	Subscription = user.Subscription

	Ingredient        = recipes.Ingredient
	Tag               = recipes.Tag
	Recipe            = recipes.Recipe
	RecipeIngredient  = recipes.RecipeIngredient
	RecipeTag         = recipes.RecipeTag
	Favorite          = recipes.Favorite
	ShoppingCartEntry = recipes.ShoppingCartEntry
	ShoppingListItem  = recipes.ShoppingListItem
	LedgerKind        = recipes.LedgerKind
)

const MaxRecipeNameLength = recipes.MaxRecipeNameLength

const (
	LedgerFavorite     = recipes.LedgerFavorite
	LedgerShoppingCart = recipes.LedgerShoppingCart
)

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Subscription{},
		&Ingredient{},
		&Tag{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeTag{},
		&Favorite{},
		&ShoppingCartEntry{},
	}
}
