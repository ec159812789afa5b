package model

import (
	"time"
)

// Tag is a user-defined label for recipes. Every tag belongs to exactly
// one user; removing the user removes the tag.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	Owner     User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Ingredient is a user-defined ingredient, same ownership shape as Tag.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	Owner     User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Recipe is the main domain entity. PriceCents stores the price as a
// fixed-point amount in cents; the wire format renders it with two
// decimal places.
type Recipe struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"type:varchar(255);not null"`
	PriceCents  int64        `json:"-" gorm:"not null;default:0"`
	TimeMinutes int          `json:"time_minutes" gorm:"not null;default:0"`
	Description string       `json:"description" gorm:"type:text"`
	Link        string       `json:"link" gorm:"type:varchar(255)"`
	OwnerID     uint         `json:"owner_id" gorm:"index;not null"`
	Owner       User         `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}
