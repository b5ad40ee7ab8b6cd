package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerKind names a per-user recipe list. The value is also the table name.
type LedgerKind string

const (
	LedgerFavorite     LedgerKind = "favorite"
	LedgerShoppingCart LedgerKind = "shopping_cart"
)

func (k LedgerKind) Valid() bool {
	return k == LedgerFavorite || k == LedgerShoppingCart
}

type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe,priority:1" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorite_user_recipe,priority:2" json:"recipe_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Favorite) TableName() string { return "favorite" }

func (f *Favorite) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type ShoppingCartEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shopping_cart_user_recipe,priority:1" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_shopping_cart_user_recipe,priority:2" json:"recipe_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ShoppingCartEntry) TableName() string { return "shopping_cart" }

func (s *ShoppingCartEntry) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ShoppingListItem is one aggregated line of a user's shopping list.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}
