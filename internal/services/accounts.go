package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/localnerve/securepulse/internal/auth"
	"github.com/localnerve/securepulse/internal/metrics"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/notify"
	"github.com/localnerve/securepulse/internal/store"
	"go.uber.org/zap"
)

// ErrUserExists is returned by Register when the email is already taken.
var ErrUserExists = fmt.Errorf("%w: user already exists", store.ErrDuplicate)

type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

// Accounts handles registration, login, profiles and emergency contacts.
type Accounts struct {
	Identities *store.IdentityStore
	Tokens     TokenIssuer
	Queue      Enqueuer
	Logger     *zap.Logger
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// Register creates the account, returns a session token and queues the
// welcome email.
func (a *Accounts) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, "", err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "", invalid("name is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, "", invalid("password must be at least %d characters", auth.MinPasswordLength)
		}
		return nil, "", err
	}

	if _, err := a.Identities.FindUserByEmail(ctx, email); err == nil {
		return nil, "", ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Plan:     models.PlanIndividual,
	}
	if err := a.Identities.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}

	token, err := a.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	a.logger().Info("User registered", zap.String("user_id", user.ID))
	a.queueWelcome(ctx, user)
	return user, token, nil
}

func (a *Accounts) queueWelcome(ctx context.Context, user *models.User) {
	if a.Queue == nil {
		return
	}
	job := notify.NewWelcomeJob(user.ID)
	if err := a.Queue.Enqueue(context.WithoutCancel(ctx), job); err != nil {
		metrics.EnqueueFailures.WithLabelValues(string(job.Kind)).Inc()
		a.logger().Warn("Failed to queue welcome email", zap.String("user_id", user.ID), zap.Error(err))
	}
}

// Login verifies the credentials. Unknown emails and wrong passwords both
// return ErrInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", invalid("email and password are required")
	}

	user, err := a.Identities.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns the user with their emergency contacts.
func (a *Accounts) Profile(ctx context.Context, userID string) (*models.User, error) {
	return a.Identities.FindUser(ctx, userID, true)
}

func (a *Accounts) UpdateProfile(ctx context.Context, userID string, update store.ProfileUpdate) (*models.User, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		update.Name = &name
	}
	if update.Plan != nil && !update.Plan.Valid() {
		return nil, invalid("invalid plan %q", *update.Plan)
	}
	return a.Identities.UpdateProfile(ctx, userID, update)
}

type ContactRequest struct {
	Name  string
	Phone string
	Email string
}

func (a *Accounts) AddContact(ctx context.Context, userID string, req ContactRequest) (*models.EmergencyContact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	phone := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)
	if phone == "" && email == "" {
		return nil, invalid("phone or email is required")
	}
	if email != "" {
		var err error
		if email, err = normalizeEmail(email); err != nil {
			return nil, err
		}
	}

	contact := &models.EmergencyContact{
		UserID: userID,
		Name:   name,
		Phone:  phone,
		Email:  email,
	}
	if err := a.Identities.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (a *Accounts) Contacts(ctx context.Context, userID string) ([]models.EmergencyContact, error) {
	return a.Identities.ListContacts(ctx, userID)
}

func (a *Accounts) RemoveContact(ctx context.Context, userID, contactID string) error {
	return a.Identities.DeleteContact(ctx, userID, contactID)
}

func (a *Accounts) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("email is required")
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", invalid("invalid email address")
	}
	return strings.ToLower(addr.Address), nil
}
