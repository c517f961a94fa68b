package repositories

import (
	"context"
	"errors"
	"strings"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository on top of gorm
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// List lists all users in insertion order
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []*models.User
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.ToDomain()
	}
	return users, nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, userErr(err)
	}
	u := row.ToDomain()
	return &u, nil
}

// GetByEmail gets a user by email, ignoring case
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&row).Error
	if err != nil {
		return nil, userErr(err)
	}
	u := row.ToDomain()
	return &u, nil
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(models.UserFromDomain(user)).Error
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	row := models.UserFromDomain(user)
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Select("name", "email", "phone", "gender", "role", "sector_ids", "birth_date").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete hard deletes a user; events they created are left alone
func (r *userRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func userErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
