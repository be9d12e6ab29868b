package entities

type Rating struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`
	Score    int    `gorm:"not null" json:"score"`
	Feedback string `gorm:"size:1000" json:"feedback"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
