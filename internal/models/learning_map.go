package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningMap is a saved graph of topic nodes and directed edges. Nodes and
// edges are stored as opaque JSON arrays: the generation engine decides their
// shape and element ids, so no fixed record type fits them.
type LearningMap struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Topic     string         `gorm:"size:500;not null" json:"topic"`
	Level     string         `gorm:"size:50" json:"level"`
	Nodes     datatypes.JSON `json:"nodes"`
	Edges     datatypes.JSON `json:"edges"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
