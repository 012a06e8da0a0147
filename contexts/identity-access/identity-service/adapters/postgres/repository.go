package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) FindByID(ctx context.Context, userID string) (entities.Identity, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Identity{}, domainerrors.ErrUserNotFound
		}
		return entities.Identity{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (entities.Identity, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Identity{}, domainerrors.ErrUserNotFound
		}
		return entities.Identity{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindCredentialsByEmail(ctx context.Context, email string) (ports.Credentials, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Credentials{}, domainerrors.ErrUserNotFound
		}
		return ports.Credentials{}, err
	}
	return ports.Credentials{
		Identity:     row.toEntity(),
		PasswordHash: row.PasswordHash,
	}, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Identity, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).
		Order("email ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Identity, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, input ports.CreateUserInput) (entities.Identity, error) {
	row := userModel{
		UserID:       input.UserID,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		Role:         string(input.Role),
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt.UTC(),
		UpdatedAt:    input.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Identity{}, domainerrors.ErrEmailTaken
		}
		return entities.Identity{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateRole(
	ctx context.Context,
	userID string,
	role entities.Role,
	updatedAt time.Time,
) (entities.Identity, error) {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"role":       string(role),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return entities.Identity{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Identity{}, domainerrors.ErrUserNotFound
	}
	return r.FindByID(ctx, userID)
}

type userModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"column:role"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func (m userModel) toEntity() entities.Identity {
	return entities.Identity{
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      entities.Role(m.Role),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
