package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is reference data: a name paired with the unit its amounts are measured in.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" yaml:"-"`
	Name            string    `gorm:"not null;size:200;index;uniqueIndex:idx_ingredient_name_unit,priority:1" json:"name" yaml:"name"`
	MeasurementUnit string    `gorm:"not null;size:200;uniqueIndex:idx_ingredient_name_unit,priority:2;column:measurement_unit" json:"measurement_unit" yaml:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredient" }

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" yaml:"-"`
	Name  string    `gorm:"not null;size:200;uniqueIndex" json:"name" yaml:"name"`
	Color string    `gorm:"not null;size:7;uniqueIndex" json:"color" yaml:"color"`
	Slug  string    `gorm:"not null;size:200;uniqueIndex" json:"slug" yaml:"slug"`
}

func (Tag) TableName() string { return "tag" }

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
