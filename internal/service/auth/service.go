package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/service/auth/models"
)

const minPasswordLength = 8

// Service сервис аутентификации и регистрации пользователей
type Service struct {
	userRepo      UserRepository
	tokenManager  TokenManager
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	userRepo UserRepository,
	tokenManager TokenManager,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		userRepo:      userRepo,
		tokenManager:  tokenManager,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// Register регистрирует нового пользователя
// Неаутентифицированная регистрация создаёт только клиентов;
// учётные записи сотрудников и администраторов создаёт администратор
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: registering user email=%s", req.Email)

	role, err := s.resolveRole(req)
	if err != nil {
		return nil, err
	}

	if err := validateRegistration(req); err != nil {
		s.logger.Warn("Register: invalid registration data for email=%s: %v", req.Email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %w", ErrInternal, err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	var created *domain.User
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.userRepo.Create(ctx, user)
		if err != nil {
			if errors.Is(err, userRepo.ErrEmailTaken) {
				return ErrEmailTaken
			}
			return fmt.Errorf("%w: Register - repository error: %w", ErrInternal, err)
		}

		detail := fmt.Sprintf("role=%s", role)
		actorID := req.ActorID
		if actorID == 0 {
			actorID = created.ID // Самостоятельная регистрация клиента
		}
		return s.auditRecorder.Record(ctx, actorID, domain.AuditActionUserRegistered,
			domain.AuditEntityUser, fmt.Sprintf("%d", created.ID), &detail)
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already taken", req.Email)
			return nil, err
		}
		s.logger.Error("Register: transaction failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	token, err := s.tokenManager.Generate(created.ID, string(created.Role))
	if err != nil {
		s.logger.Error("Register: failed to generate token for user=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: Register - generate token: %w", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered user id=%d role=%s", created.ID, created.Role)
	return &models.AuthResponse{
		Token: token,
		User:  *models.FromDomainUser(created),
	}, nil
}

// Login аутентифицирует пользователя и выпускает токен доступа
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Login: login attempt for email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: user with email=%s not found", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("Login: user=%d is inactive", user.ID)
		return nil, ErrUserInactive
	}

	token, err := s.tokenManager.Generate(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Login: failed to generate token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - generate token: %w", ErrInternal, err)
	}

	s.logger.Info("Login: successful login for user=%d role=%s", user.ID, user.Role)
	return &models.AuthResponse{
		Token: token,
		User:  *models.FromDomainUser(user),
	}, nil
}

// resolveRole определяет роль создаваемого пользователя с учётом прав инициатора
func (s *Service) resolveRole(req *models.RegisterRequest) (domain.Role, error) {
	if req.Role == "" || req.Role == string(domain.RoleClient) {
		return domain.RoleClient, nil
	}

	role := domain.Role(req.Role)
	if !role.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	// Staff-роли создаёт только администратор
	if req.ActorRole != string(domain.RoleAdmin) {
		s.logger.Warn("resolveRole: actor=%d role=%s attempted to create %s account",
			req.ActorID, req.ActorRole, role)
		return "", ErrAccessDenied
	}

	return role, nil
}

// validateRegistration проверяет базовые поля регистрации
func validateRegistration(req *models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}
