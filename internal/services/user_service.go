package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type UserService interface {
	Register(username, email, password string) (*models.User, error)
	EnsureAdmin(username, email, password string) error
	GetByID(p authz.Principal, id int64) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(p authz.Principal, id int64, data *models.User) (*models.User, error)
	Delete(p authz.Principal, id int64) error
	List(p authz.Principal, limit, offset int) ([]*models.User, error)

	// login/refresh plumbing
	UpdateRefresh(userID int64, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	GetByRefreshToken(token string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

// Register creates a standard USER account. Role is never taken from the
// request; admin accounts only come from EnsureAdmin or an admin update.
func (s *userService) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("password is required: %w", apperrors.ErrValidation)
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         authz.RoleUser,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
			// warn but do not fail registration
			log.Printf("[user][register] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

// EnsureAdmin seeds the configured administrator account on startup.
func (s *userService) EnsureAdmin(username, email, password string) error {
	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         authz.RoleAdmin,
	}
	if err := s.repo.Create(admin); err != nil {
		return err
	}
	log.Printf("[user][seed] admin account %q created", username)
	return nil
}

func (s *userService) GetByID(p authz.Principal, id int64) (*models.User, error) {
	if !authz.CanAccessUser(p, id) {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrAccessDenied)
	}
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *userService) GetByUsername(username string) (*models.User, error) {
	return s.repo.GetByUsername(username)
}

// Update changes username/email, and the role when the caller is an admin. A
// non-admin request carrying a different role is rejected, not ignored.
func (s *userService) Update(p authz.Principal, id int64, data *models.User) (*models.User, error) {
	if !authz.CanAccessUser(p, id) {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrAccessDenied)
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}

	if data.Username != "" {
		existing.Username = strings.TrimSpace(data.Username)
	}
	if data.Email != "" {
		existing.Email = strings.TrimSpace(data.Email)
	}
	if data.Role != "" && data.Role != existing.Role {
		if !authz.CanChangeRole(p) {
			return nil, fmt.Errorf("role change: %w", apperrors.ErrAccessDenied)
		}
		if !authz.ValidRole(data.Role) {
			return nil, fmt.Errorf("unknown role %q: %w", data.Role, apperrors.ErrValidation)
		}
		existing.Role = data.Role
	}
	if existing.Username == "" || existing.Email == "" {
		return nil, fmt.Errorf("username and email are required: %w", apperrors.ErrValidation)
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *userService) Delete(p authz.Principal, id int64) error {
	if !authz.CanManageUsers(p) {
		return fmt.Errorf("user %d: %w", id, apperrors.ErrAccessDenied)
	}
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	return s.repo.Delete(id)
}

func (s *userService) List(p authz.Principal, limit, offset int) ([]*models.User, error) {
	if !authz.CanManageUsers(p) {
		return nil, fmt.Errorf("users: %w", apperrors.ErrAccessDenied)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(limit, offset)
}

func (s *userService) UpdateRefresh(userID int64, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(userID, token, expiresAt)
}

func (s *userService) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return s.repo.RotateRefresh(oldToken, newToken, newExpiresAt)
}

func (s *userService) GetByRefreshToken(token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(token)
}
