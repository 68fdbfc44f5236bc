// Package setting implements the application settings collection.
// Any authenticated user may read settings; only admins may change them.
package setting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

const (
	maxValueLen       = 4096
	maxDescriptionLen = 512
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]{0,63}$`)

type settingRepo interface {
	List(ctx context.Context) ([]domain.Setting, error)
	Create(ctx context.Context, s domain.Setting) (*domain.Setting, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.SettingPatch, now time.Time) (*domain.Setting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements settings operations.
type Service struct {
	log      *slog.Logger
	settings settingRepo
	now      func() time.Time
}

// NewService creates a new setting service instance.
func NewService(logger *slog.Logger, settings settingRepo) *Service {
	return &Service{
		log:      logger.With("service", "setting"),
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput holds parameters for a new setting.
type CreateInput struct {
	Key         string
	Value       string
	Description *string
}

// Validate validates the create setting input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	key := strings.TrimSpace(i.Key)
	if key == "" {
		errs = append(errs, domain.FieldError{Field: "key", Message: "required"})
	} else if !keyPattern.MatchString(key) {
		errs = append(errs, domain.FieldError{Field: "key", Message: "must be lowercase letters, digits, '.', '_' or '-'"})
	}
	errs = append(errs, validateValue(&i.Value, i.Description)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds optional setting changes.
type UpdateInput struct {
	Value       *string
	Description *string
}

// Validate validates the update setting input.
func (i UpdateInput) Validate() error {
	if errs := validateValue(i.Value, i.Description); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateValue(value, description *string) []domain.FieldError {
	var errs []domain.FieldError
	if value != nil && len(*value) > maxValueLen {
		errs = append(errs, domain.FieldError{Field: "value", Message: "too long"})
	}
	if description != nil && len(*description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	return errs
}

// List returns all settings for any authenticated user.
func (s *Service) List(ctx context.Context) ([]domain.Setting, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	settings, err := s.settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting.List: %w", err)
	}
	return settings, nil
}

// Create adds a setting (admin only).
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Setting, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.settings.Create(ctx, domain.Setting{
		ID:          uuid.New(),
		Key:         strings.TrimSpace(input.Key),
		Value:       input.Value,
		Description: input.Description,
		UpdatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewValidationError("key", "is already in use")
		}
		return nil, fmt.Errorf("setting.Create: %w", err)
	}

	s.log.InfoContext(ctx, "setting created", slog.String("key", created.Key))
	return created, nil
}

// Update changes a setting's value or description (admin only).
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Setting, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.settings.Update(ctx, id, domain.SettingPatch{
		Value:       input.Value,
		Description: input.Description,
	}, s.now())
	if err != nil {
		return nil, fmt.Errorf("setting.Update: %w", err)
	}

	s.log.InfoContext(ctx, "setting updated", slog.String("key", updated.Key))
	return updated, nil
}

// Delete removes a setting (admin only).
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	if err := s.settings.Delete(ctx, id); err != nil {
		return fmt.Errorf("setting.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "setting deleted", slog.String("setting_id", id.String()))
	return nil
}
