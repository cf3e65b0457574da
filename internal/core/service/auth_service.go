package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamtrack/teamtrack-api/internal/api/metrics"
	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements registration, login and account self-service.
type AuthService struct {
	users     ports.UserRepository
	employees ports.EmployeeRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	employees ports.EmployeeRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, employees: employees, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates an account. When no employee id is supplied the matching
// directory record is found by email or created with defaults, and linked,
// so most accounts start out with a usable employee link.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" || len(in.Password) < minPasswordLength {
		return nil, domain.ErrValidation
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidUserRole(role) {
		return nil, domain.ErrValidation
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	employeeID := in.EmployeeID
	if employeeID == "" {
		emp, err := s.findOrCreateEmployee(ctx, in.Name, email)
		if err != nil {
			return nil, err
		}
		employeeID = emp.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeID:   employeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return &ports.AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) findOrCreateEmployee(ctx context.Context, name, email string) (*domain.Employee, error) {
	emp, err := s.employees.FindByEmail(ctx, email)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, err
	}

	created, err := s.employees.Create(ctx, &domain.Employee{
		Name:       name,
		Email:      email,
		Role:       domain.RoleDeveloper,
		Department: domain.DeptEngineering,
		AvatarURL:  domain.DefaultAvatarURL(name),
	})
	if errors.Is(err, domain.ErrEmployeeExists) {
		// lost a concurrent registration race; the record is there now
		return s.employees.FindByEmail(ctx, email)
	}
	return created, err
}

// Login authenticates by email and password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{User: user, Token: token}, nil
}

// Me returns the current user with the linked employee summary populated.
// An unset link yields a nil summary; a dangling one surfaces as NotFound.
func (s *AuthService) Me(ctx context.Context, userID string) (*ports.MeResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ports.MeResult{User: user}
	if user.EmployeeID == "" {
		return result, nil
	}

	emp, err := s.employees.FindByID(ctx, user.EmployeeID)
	if err != nil {
		return nil, err
	}
	result.Employee = &ports.EmployeeSummary{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Role:       emp.Role,
		Department: emp.Department,
		AvatarURL:  emp.AvatarURL,
	}
	return result, nil
}

// UpdateProfile changes the account's name and/or email.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = normalizeEmail(email)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || len(newPassword) < minPasswordLength {
		return domain.ErrValidation
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
