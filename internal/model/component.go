package model

type Component struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"size:256;not null" json:"name"`
	Content *string `gorm:"type:text" json:"content"`
}

func (Component) TableName() string {
	return "components"
}
