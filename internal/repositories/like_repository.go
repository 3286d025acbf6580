package repositories

import (
	"errors"

	"github.com/okanv/likeledger/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for the durable like journal
type LikeRepository interface {
	RecordLike(like *models.Like) error
	GetLikersByOwner(ownerAddress string) ([]models.Like, error)
	GetLikesCountByOwner(ownerAddress string) (int64, error)
	HasLiked(ownerAddress, likerAddress string) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// RecordLike appends a like row. The (owner, liker) unique index absorbs
// replays, so recording the same like twice leaves one row.
func (r *PostgresLikeRepository) RecordLike(like *models.Like) error {
	err := r.db.Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// GetLikersByOwner retrieves all like rows against an owner's post
func (r *PostgresLikeRepository) GetLikersByOwner(ownerAddress string) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.Where("owner_address = ?", ownerAddress).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// GetLikesCountByOwner retrieves the count of likes against an owner's post
func (r *PostgresLikeRepository) GetLikesCountByOwner(ownerAddress string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("owner_address = ?", ownerAddress).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasLiked checks whether a liker already has a row against an owner's post
func (r *PostgresLikeRepository) HasLiked(ownerAddress, likerAddress string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).
		Where("owner_address = ? AND liker_address = ?", ownerAddress, likerAddress).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
