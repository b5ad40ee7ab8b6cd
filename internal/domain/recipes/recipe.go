package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

const MaxRecipeNameLength = 200

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Name        string    `gorm:"not null;size:200;index" json:"name"`
	Image       string    `gorm:"not null;column:image" json:"image"`
	Text        string    `gorm:"not null;type:text" json:"text"`
	CookingTime int       `gorm:"not null;column:cooking_time;check:chk_recipe_cooking_time,cooking_time >= 1" json:"cooking_time"`

	Author      *user.User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tag;joinForeignKey:RecipeID;joinReferences:TagID" json:"tags,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is one line of a recipe: how much of an ingredient it uses.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair,priority:1" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_recipe_ingredient_pair,priority:2" json:"ingredient_id"`
	Amount       int       `gorm:"not null;check:chk_recipe_ingredient_amount,amount >= 1" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredient" }

func (ri *RecipeIngredient) BeforeCreate(*gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// RecipeTag is the join row behind Recipe.Tags.
type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"tag_id"`
}

func (RecipeTag) TableName() string { return "recipe_tag" }
