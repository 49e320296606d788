package model

// UserComponent links an owner to a component. Removing either side removes the link.
type UserComponent struct {
	UserID      uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ComponentID uint `gorm:"primaryKey;autoIncrement:false" json:"component_id"`

	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Component Component `gorm:"foreignKey:ComponentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (UserComponent) TableName() string {
	return "users_components"
}
