// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
	"fieldops/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements the repository.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
// It returns the repository as a repository.ProfileRepository interface, adhering to dependency inversion.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindRole retrieves the stored role for an identity.
func (repo *profileRepository) FindRole(ctx context.Context, identityID string) (entity.Role, error) {
	var roleM model.UserRoleModel
	err := repo.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		First(&roleM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrRoleNotFound
		}

		return "", errors.Wrap(err, "failed to find role")
	}

	return entity.Role(roleM.Role), nil
}

// FindProfile retrieves the stored profile for an identity.
func (repo *profileRepository) FindProfile(ctx context.Context, identityID string) (*repository.ProfileRecord, error) {
	var profileM model.UserProfileModel
	err := repo.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	return toProfileRecord(&profileM), nil
}

// SaveRole upserts the role record for an identity.
func (repo *profileRepository) SaveRole(ctx context.Context, identityID string, role entity.Role) error {
	roleM := model.UserRoleModel{
		IdentityID: identityID,
		Role:       role.String(),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&roleM).Error
	if err != nil {
		return errors.Wrap(err, "failed to save role")
	}

	return nil
}

// SaveProfile upserts the profile record for an identity.
func (repo *profileRepository) SaveProfile(ctx context.Context, record *repository.ProfileRecord) error {
	profileM := model.UserProfileModel{
		IdentityID: record.IdentityID,
		Role:       record.Role.String(),
		Name:       record.Name,
		Phone:      record.Phone,
		State:      record.State,
		District:   record.District,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "name", "phone", "state", "district", "updated_at"}),
		}).
		Create(&profileM).Error
	if err != nil {
		return errors.Wrap(err, "failed to save profile")
	}

	return nil
}

// ListProfiles returns every stored profile.
func (repo *profileRepository) ListProfiles(ctx context.Context) ([]*repository.ProfileRecord, error) {
	var models []model.UserProfileModel
	err := repo.db.WithContext(ctx).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}

	records := make([]*repository.ProfileRecord, 0, len(models))
	for i := range models {
		records = append(records, toProfileRecord(&models[i]))
	}

	return records, nil
}

// toProfileRecord maps the persistence model back to the domain record.
func toProfileRecord(profileM *model.UserProfileModel) *repository.ProfileRecord {
	return &repository.ProfileRecord{
		IdentityID: profileM.IdentityID,
		Role:       entity.Role(profileM.Role),
		Name:       profileM.Name,
		Phone:      profileM.Phone,
		State:      profileM.State,
		District:   profileM.District,
		UpdatedAt:  profileM.UpdatedAt,
	}
}
