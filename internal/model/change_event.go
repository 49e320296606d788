package model

import "time"

const (
	EntityUser      = "user"
	EntityComponent = "component"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent records a committed write. Payload holds the entity's JSON wire form.
type ChangeEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Entity     string    `gorm:"size:32;not null;index:idx_change_events_entity" json:"entity"`
	EntityID   uint      `gorm:"not null;index:idx_change_events_entity" json:"entity_id"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	Payload    string    `gorm:"type:text" json:"payload"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
}

func (ChangeEvent) TableName() string {
	return "change_events"
}
