package player

import (
	"errors"
	"fmt"

	"wagergate/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("player not found")

// Repository resolves provider usernames to player records. Registration
// happens out-of-band through the user controllers; callbacks only read.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUsername(webID, username string) (*models.Player, error) {
	var p models.Player
	err := r.db.Where("web_id = ? AND username = ? AND is_active = true", webID, username).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find player %s/%s: %w", webID, username, err)
	}
	return &p, nil
}

func (r *Repository) FindByPlayID(playID string) (*models.Player, error) {
	var p models.Player
	err := r.db.Where("play_id = ? AND is_active = true", playID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find player %s: %w", playID, err)
	}
	return &p, nil
}

func (r *Repository) Create(p *models.Player) error {
	if err := r.db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("player %s already registered: %w", p.Username, err)
		}
		return fmt.Errorf("create player %s: %w", p.Username, err)
	}
	return nil
}
