package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	FindByUserID(id uuid.UUID) (*model.User, error)
	Update(user *model.User) error
	ClearRefreshToken(userID uuid.UUID) error
	FindAll(page, limit int) ([]model.User, int64, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? AND is_active = true", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByUserID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ? AND is_active = true", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepo) ClearRefreshToken(userID uuid.UUID) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("refresh_token", "").Error
}

func (r *UserRepo) FindAll(page, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.Model(&model.User{}).Where("is_active = true").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.DB.Where("is_active = true").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListUserIDs feeds the rating engine's zero-fill fallback. Ordered by
// creation so the fallback board is stable.
func (r *UserRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("is_active = true").
		Order("created_at asc").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// NamesByIDs resolves display names for a leaderboard page in one query.
func (r *UserRepo) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	var users []model.User
	err := r.DB.WithContext(ctx).
		Select("id", "full_name").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID.String()] = u.FullName
	}
	return names, nil
}
