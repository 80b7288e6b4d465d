package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gameadmin/internal/auth"
	"gameadmin/internal/entity"
	"gameadmin/internal/repository"
)

// AdminStore то, что нужно сервису от хранилища администраторов.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (entity.Admin, error)
	GetByID(ctx context.Context, id int) (entity.Admin, error)
	UpdatePassword(ctx context.Context, id int, hash string) error
	UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	Update(ctx context.Context, id int, upd repository.AdminUpdate) error
}

type AuthService struct {
	admins AdminStore
}

func NewAuthService(admins AdminStore) *AuthService {
	return &AuthService{admins: admins}
}

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Login проверяет учетные данные администратора.
// Пароль в открытом виде после успешного входа перехешируется.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (entity.Admin, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validate.Struct(in); err != nil {
		return entity.Admin{}, ErrMissingCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, in.Username)
	if errors.Is(err, entity.ErrNotFound) {
		slog.Info("auth_event", "event", "login_failed", "username", in.Username, "reason", "not_found")
		return entity.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return entity.Admin{}, err
	}

	ok, legacy := auth.Verify(admin.PasswordHash, in.Password)
	if !ok {
		slog.Info("auth_event", "event", "login_failed", "username", in.Username, "reason", "wrong_password")
		return entity.Admin{}, ErrInvalidCredentials
	}

	if legacy {
		s.rehash(ctx, &admin, in.Password)
	}

	slog.Info("auth_event", "event", "login_success", "admin_id", admin.ID)
	return admin, nil
}

// ошибка перехеширования не мешает входу
func (s *AuthService) rehash(ctx context.Context, admin *entity.Admin, password string) {
	hash, err := auth.Hash(password)
	if err != nil {
		slog.Error("rehash admin password", "admin_id", admin.ID, "err", err)
		return
	}
	if err := s.admins.UpdatePassword(ctx, admin.ID, hash); err != nil {
		slog.Error("store rehashed admin password", "admin_id", admin.ID, "err", err)
		return
	}
	admin.PasswordHash = hash
	slog.Info("auth_event", "event", "password_rehashed", "admin_id", admin.ID)
}

// ProfileUpdate пустые поля остаются без изменений
type ProfileUpdate struct {
	CurrentPassword string `validate:"required"`
	Username        string `validate:"omitempty,max=50"`
	Email           string `validate:"omitempty,email,max=255"`
	FullName        string `validate:"omitempty,max=255"`
	NewPassword     string `validate:"omitempty,min=6"`
	ConfirmPassword string `validate:"eqfield=NewPassword"`
}

func (p *ProfileUpdate) clean() {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.FullName = strings.TrimSpace(p.FullName)
}

// UpdateProfile меняет данные администратора после повторной проверки текущего пароля.
func (s *AuthService) UpdateProfile(ctx context.Context, adminID int, in ProfileUpdate) (entity.Admin, error) {
	in.clean()

	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return entity.Admin{}, err
	}

	// текущие значения не меняются и не проверяются заново
	if strings.EqualFold(in.Email, admin.Email) {
		in.Email = ""
	}
	if in.Username == admin.Username {
		in.Username = ""
	}

	if err := validate.Struct(in); err != nil {
		return entity.Admin{}, validationError(err)
	}

	if ok, _ := auth.Verify(admin.PasswordHash, in.CurrentPassword); !ok {
		slog.Info("auth_event", "event", "profile_update_denied", "admin_id", adminID)
		return entity.Admin{}, ErrWrongCurrentPassword
	}

	upd := repository.AdminUpdate{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
	}

	if upd.Username != "" {
		taken, err := s.admins.UsernameTaken(ctx, upd.Username, adminID)
		if err != nil {
			return entity.Admin{}, err
		}
		if taken {
			return entity.Admin{}, ErrUsernameTaken
		}
	}

	if upd.Email != "" {
		taken, err := s.admins.EmailTaken(ctx, upd.Email, adminID)
		if err != nil {
			return entity.Admin{}, err
		}
		if taken {
			return entity.Admin{}, ErrEmailTaken
		}
	}

	if in.NewPassword != "" {
		hash, err := auth.Hash(in.NewPassword)
		if err != nil {
			return entity.Admin{}, err
		}
		upd.PasswordHash = hash
	}

	if upd.IsEmpty() {
		return entity.Admin{}, ErrNoChanges
	}

	if err := s.admins.Update(ctx, adminID, upd); err != nil {
		return entity.Admin{}, err
	}

	slog.Info("auth_event", "event", "profile_updated", "admin_id", adminID, "password_changed", upd.PasswordHash != "")
	return s.admins.GetByID(ctx, adminID)
}
