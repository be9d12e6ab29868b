package entities

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:100" json:"username"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"is_admin"`

	Recipes   []*Recipe   `gorm:"foreignKey:UserID"`
	Comments  []*Comment  `gorm:"foreignKey:UserID"`
	Favorites []*Favorite `gorm:"foreignKey:UserID"`
	Ratings   []*Rating   `gorm:"foreignKey:UserID"`
	Timestamp
}
