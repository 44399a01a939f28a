package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"itemshop/internal/domain"
	"itemshop/internal/repos"
	"itemshop/internal/validate"
)

var (
	ErrAccountExists = errors.New("account already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	DiscordID string `json:"discordId"`
}

type AccountService struct {
	Users     *repos.UserRepo
	Profiles  *ProfileTemplates
	HashCost  int
	CreatedAt func() time.Time
}

func NewAccountService(users *repos.UserRepo, profiles *ProfileTemplates) *AccountService {
	return &AccountService{Users: users, Profiles: profiles, HashCost: bcrypt.DefaultCost, CreatedAt: time.Now}
}

// Register creates the account and its default profiles in one transaction.
func (s *AccountService) Register(in RegisterInput) (*domain.User, error) {
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	username, ok := validate.Username(in.Username)
	if !ok {
		return nil, fmt.Errorf("%w: username", ErrInvalidInput)
	}
	if !validate.Password(in.Password) {
		return nil, fmt.Errorf("%w: password", ErrInvalidInput)
	}
	discordID, ok := validate.DiscordID(in.DiscordID)
	if !ok {
		return nil, fmt.Errorf("%w: discordId", ErrInvalidInput)
	}

	exists, err := s.Users.Exists(email, discordID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.HashCost)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		AccountID: domain.NewID(),
		Email:     email,
		Username:  username,
		Hash:      string(hash),
		DiscordID: discordID,
		CreatedAt: s.CreatedAt().UTC().Format(time.RFC3339),
	}

	profiles := make([]domain.Profile, 0, len(DefaultProfiles))
	for _, id := range DefaultProfiles {
		p, err := s.Profiles.Create(u.AccountID, id)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := s.Users.CreateWithProfiles(u, profiles); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &u, nil
}
