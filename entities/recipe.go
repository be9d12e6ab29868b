package entities

import (
	"gorm.io/datatypes"
)

type Recipe struct {
	ID              uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint     `gorm:"not null;index" json:"user_id"`
	Title           string   `gorm:"not null" json:"title"`
	Description     string   `gorm:"size:5000" json:"description"`
	Steps           string   `gorm:"size:5000" json:"steps"`
	Category        string   `gorm:"index" json:"category"`
	Difficulty      string   `json:"difficulty"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	Image           string   `gorm:"type:text" json:"image"`
	EstimatedPrice  *float64 `json:"estimated_price"`
	IsApproved      bool     `gorm:"not null;default:false;index" json:"is_approved"`

	// legacy free-text column, kept in step with the ingredient rows
	IngredientsJSON datatypes.JSON `gorm:"column:ingredients" json:"ingredients_json,omitempty"`

	User        *User         `gorm:"foreignKey:UserID"`
	Ingredients []*Ingredient `gorm:"foreignKey:RecipeID"`
	Timestamp
}
