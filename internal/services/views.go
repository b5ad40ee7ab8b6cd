package services

import (
	"sort"

	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

type UserView struct {
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

func newUserView(u *types.User, subscribed bool) UserView {
	if u == nil {
		return UserView{}
	}
	return UserView{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

type RecipeIngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeView struct {
	ID               uuid.UUID              `json:"id"`
	Tags             []types.Tag            `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// RecipeShortView is the compact form returned by favorite/cart mutations and subscription previews.
type RecipeShortView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func newRecipeShortView(r *types.Recipe) RecipeShortView {
	return RecipeShortView{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

type SubscriptionView struct {
	UserView
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

// recipeFlags holds the per-actor booleans of a batch of recipes.
type recipeFlags struct {
	favorited  map[uuid.UUID]bool
	inCart     map[uuid.UUID]bool
	subscribed map[uuid.UUID]bool
}

func newRecipeView(r *types.Recipe, flags recipeFlags) RecipeView {
	tags := make([]types.Tag, 0, len(r.Tags))
	tags = append(tags, r.Tags...)
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	ingredients := make([]RecipeIngredientView, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		v := RecipeIngredientView{ID: ri.IngredientID, Amount: ri.Amount}
		if ri.Ingredient != nil {
			v.Name = ri.Ingredient.Name
			v.MeasurementUnit = ri.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, v)
	}
	sort.Slice(ingredients, func(i, j int) bool {
		if ingredients[i].Name != ingredients[j].Name {
			return ingredients[i].Name < ingredients[j].Name
		}
		return ingredients[i].MeasurementUnit < ingredients[j].MeasurementUnit
	})

	return RecipeView{
		ID:               r.ID,
		Tags:             tags,
		Author:           newUserView(r.Author, flags.subscribed[r.AuthorID]),
		Ingredients:      ingredients,
		IsFavorited:      flags.favorited[r.ID],
		IsInShoppingCart: flags.inCart[r.ID],
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}
