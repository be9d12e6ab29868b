package entities

type Ingredient struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Quantity string `gorm:"not null;default:''" json:"quantity"`
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
