package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wisdomgraph/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrMapNotFound = errors.New("learning map not found")

// maxListedMaps bounds a single list response.
const maxListedMaps = 100

type MapService struct {
	db *gorm.DB
}

func NewMapService(db *gorm.DB) *MapService {
	return &MapService{db: db}
}

// Save always inserts a new record, even when an identical topic already
// exists for the owner.
func (s *MapService) Save(ownerID uuid.UUID, topic, level string, nodes, edges datatypes.JSON) (*models.LearningMap, error) {
	m := models.LearningMap{
		ID:     uuid.New(),
		UserID: ownerID,
		Topic:  topic,
		Level:  level,
		Nodes:  nodes,
		Edges:  edges,
	}

	if err := s.db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to save learning map: %w", err)
	}
	return &m, nil
}

func (s *MapService) List(ownerID uuid.UUID) ([]models.LearningMap, error) {
	maps := make([]models.LearningMap, 0)
	if err := s.db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Limit(maxListedMaps).
		Find(&maps).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch learning maps: %w", err)
	}
	return maps, nil
}

// Get looks up ownership and existence together: a map owned by someone else
// is indistinguishable from a nonexistent one.
func (s *MapService) Get(ownerID, mapID uuid.UUID) (*models.LearningMap, error) {
	var m models.LearningMap
	if err := s.db.First(&m, "id = ? AND user_id = ?", mapID, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMapNotFound
		}
		return nil, fmt.Errorf("failed to fetch learning map: %w", err)
	}
	return &m, nil
}

func (s *MapService) Delete(ownerID, mapID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", mapID, ownerID).Delete(&models.LearningMap{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete learning map: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMapNotFound
	}
	return nil
}

// Export uses the same lookup rule as Get; the handler returns the bare
// record without a success envelope.
func (s *MapService) Export(ownerID, mapID uuid.UUID) (*models.LearningMap, error) {
	return s.Get(ownerID, mapID)
}
