package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"foodnest/internal/domain/team"
	"foodnest/internal/infrastructure/database/postgres/models"
)

// TeamRepository implements team.Repository
type TeamRepository struct {
	db *DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *DB) team.Repository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t *team.Team) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	dbModel, err := toTeamModel(t)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return team.ErrTeamAlreadyExists
		}
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	var dbModel models.TeamModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, team.ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return toTeamEntity(&dbModel)
}

func (r *TeamRepository) GetAll(ctx context.Context) ([]*team.Team, error) {
	var dbModels []models.TeamModel
	err := r.db.DB.WithContext(ctx).Order("name").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	teams := make([]*team.Team, len(dbModels))
	for i := range dbModels {
		t, err := toTeamEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		teams[i] = t
	}

	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	t.UpdatedAt = time.Now()

	dbModel, err := toTeamModel(t)
	if err != nil {
		return err
	}

	result := r.db.DB.WithContext(ctx).Model(&models.TeamModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":        dbModel.Name,
			"supervisors": dbModel.Supervisors,
			"riders":      dbModel.Riders,
			"cooks":       dbModel.Cooks,
			"updated_at":  dbModel.UpdatedAt,
		})

	if result.Error != nil {
		if strings.Contains(strings.ToLower(result.Error.Error()), "duplicate key") {
			return team.ErrTeamAlreadyExists
		}
		return fmt.Errorf("failed to update team: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return team.ErrTeamNotFound
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.TeamModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete team: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return team.ErrTeamNotFound
	}

	return nil
}

func toTeamModel(t *team.Team) (*models.TeamModel, error) {
	supervisors, err := json.Marshal(t.Supervisors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode supervisors: %w", err)
	}
	riders, err := json.Marshal(t.Riders)
	if err != nil {
		return nil, fmt.Errorf("failed to encode riders: %w", err)
	}
	cooks, err := json.Marshal(t.Cooks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cooks: %w", err)
	}

	return &models.TeamModel{
		ID:          t.ID,
		Name:        t.Name,
		Supervisors: datatypes.JSON(supervisors),
		Riders:      datatypes.JSON(riders),
		Cooks:       datatypes.JSON(cooks),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}, nil
}

func toTeamEntity(m *models.TeamModel) (*team.Team, error) {
	t := &team.Team{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	for _, pair := range []struct {
		raw  datatypes.JSON
		dest *[]uuid.UUID
	}{
		{m.Supervisors, &t.Supervisors},
		{m.Riders, &t.Riders},
		{m.Cooks, &t.Cooks},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return nil, fmt.Errorf("failed to decode team members: %w", err)
		}
	}

	return t, nil
}
