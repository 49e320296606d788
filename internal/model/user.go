package model

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:128;not null;uniqueIndex" json:"username"`
	Password string `gorm:"size:128;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}
