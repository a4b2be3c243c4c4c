package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/service"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt ignores anything beyond 72 bytes
)

// Store is the persistence the user service needs.
type Store interface {
	repository.UserRepository
	repository.BranchRepository
}

// Service manages operator accounts.
type Service struct {
	store  Store
	cost   int
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new user service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, cost: bcrypt.DefaultCost, now: time.Now, logger: logger}
}

// HashPassword generates a bcrypt hash of the password.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a plain password with its hash.
func CheckPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (models.User, error) {
	return s.store.GetUser(ctx, id)
}

// Create registers a new user. Role names are mapped with models.ParseRoles
// and every branch id must exist.
func (s *Service) Create(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	username := strings.TrimSpace(req.Username)
	if err := validateUsername(username); err != nil {
		return models.User{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return models.User{}, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return models.User{}, err
	}
	if err := s.checkBranches(ctx, req.Branches); err != nil {
		return models.User{}, err
	}

	hash, err := HashPassword(req.Password, s.cost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        models.ParseRoles(req.Roles),
		BranchIDs:    nonNil(req.Branches),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, fmt.Errorf("username %q is already taken: %w", username, repository.ErrDuplicate)
		}
		return models.User{}, err
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("username", user.Username), zap.Any("roles", user.Roles))
	return user, nil
}

// Update applies the supplied fields. The password changes only when it is
// non-empty.
func (s *Service) Update(ctx context.Context, id int64, req models.UserUpdate) (models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if err := validateUsername(username); err != nil {
			return models.User{}, err
		}
		user.Username = username
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return models.User{}, err
		}
		user.Email = email
	}
	if req.Password != "" {
		if err := validatePassword(req.Password); err != nil {
			return models.User{}, err
		}
		hash, err := HashPassword(req.Password, s.cost)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = hash
	}
	if req.Roles != nil {
		user.Roles = models.ParseRoles(req.Roles)
	}
	if req.Branches != nil {
		if err := s.checkBranches(ctx, req.Branches); err != nil {
			return models.User{}, err
		}
		user.BranchIDs = req.Branches
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, fmt.Errorf("username %q is already taken: %w", user.Username, repository.ErrDuplicate)
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

// Authenticate returns the user when username and password match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, fmt.Errorf("bad credentials: %w", service.ErrUnauthorized)
		}
		return models.User{}, err
	}
	if !CheckPassword(password, user.PasswordHash) {
		return models.User{}, fmt.Errorf("bad credentials: %w", service.ErrUnauthorized)
	}
	return user, nil
}

func (s *Service) checkBranches(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.store.GetBranch(ctx, id); err != nil {
			return fmt.Errorf("branch %d: %w", id, err)
		}
	}
	return nil
}

func validateUsername(username string) error {
	if n := len([]rune(username)); n < minUsernameLength || n > maxUsernameLength {
		return service.Invalid("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return service.Invalid("password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", service.Invalid("invalid email %q", email)
	}
	return addr.Address, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
