package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/sirupsen/logrus"
)

// ErrNoSession is returned when nobody has completed onboarding.
var ErrNoSession = errors.New("no user session")

// ValidationError reports an onboarding field that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New()

// ValidateName checks the onboarding name field.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	return nil
}

// ValidateEmail checks the onboarding email field.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if err := validate.Var(email, "email"); err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	return nil
}

// SessionService stores the local user profile. There is no remote identity
// provider; a stored name and email is the whole session.
type SessionService struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewSessionService(repo Repository, log logrus.FieldLogger) *SessionService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SessionService{repo: repo, log: log}
}

func (s *SessionService) Register(name, email string) (*data.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	user := &data.User{Name: name, Email: email}
	if err := s.repo.SaveUser(user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	s.log.WithField("email", email).Info("user registered")
	return user, nil
}

// Current returns the signed-in user or ErrNoSession.
func (s *SessionService) Current() (*data.User, error) {
	user, err := s.repo.GetUser()
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrNoSession
	}
	return user, nil
}

// SignOut forgets the user. The cached menu and sync state are kept.
func (s *SessionService) SignOut() error {
	if err := s.repo.DeleteUser(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	s.log.Info("user signed out")
	return nil
}
