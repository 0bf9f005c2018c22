package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/validate"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists is returned when the email belongs to another account.
	ErrEmailAlreadyExists = errors.New("email already registered")
	// ErrUserNotFound is returned when a profile lookup matches no account.
	ErrUserNotFound = errors.New("user not found")
)

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, form validate.RegistrationForm) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Profile(ctx context.Context, username string) (*domain.User, error)
	DeleteAccount(ctx context.Context, username, password string) error
}

type userService struct {
	users      repository.UserRepository
	validator  *validate.Validator
	bcryptCost int
	dummyHash  []byte
	log        logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, validator *validate.Validator, bcryptCost int, log logrus.FieldLogger) (UserService, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	// compared against for unknown usernames so both failure paths cost a hash
	dummy, err := bcrypt.GenerateFromPassword([]byte("fintrack-unknown-user"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare credential check: %w", err)
	}
	return &userService{
		users:      users,
		validator:  validator,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		log:        log,
	}, nil
}

func (s *userService) Register(ctx context.Context, form validate.RegistrationForm) (*domain.User, error) {
	if err := s.validator.Registration(form); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(form.Username)
	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(form.Password)), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(form.Name),
		Email:        strings.TrimSpace(form.Email),
		Phone:        strings.TrimSpace(form.Phone),
		Address:      strings.TrimSpace(form.Address),
		Username:     username,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUserAlreadyExists
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.log.WithField("username", user.Username).Info("user registered")
	return sanitizeUser(user), nil
}

func (s *userService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.users.UsernameExists(ctx, strings.TrimSpace(username))
}

// Authenticate matches the username case-insensitively and the password
// against the stored hash. Unknown usernames and wrong passwords are
// reported the same way. Case variants of one name can coexist; they are
// tried oldest first and the first hash that matches wins.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	candidates, err := s.users.ListByUsernameFold(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.log.WithField("username", username).Debug("login rejected")
		return nil, ErrInvalidCredentials
	}

	for i := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].PasswordHash), []byte(password)) == nil {
			return sanitizeUser(&candidates[i]), nil
		}
	}

	s.log.WithField("username", username).Debug("login rejected")
	return nil, ErrInvalidCredentials
}

func (s *userService) Profile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// DeleteAccount removes the account after re-checking its credentials.
// Its transactions go with it through the foreign key cascade.
func (s *userService) DeleteAccount(ctx context.Context, username, password string) error {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.Username); err != nil {
		return err
	}
	s.log.WithField("username", user.Username).Info("user deleted")
	return nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		Address:  user.Address,
		Username: user.Username,
	}
}
