package service

import (
	"context"

	"psidiario/internal/models"
	"psidiario/internal/repository"

	"github.com/google/uuid"
)

// AuthService implements registration and login over the users collection.
type AuthService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	FullName        string
	BirthDate       string
	Password        string
	ConfirmPassword string
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register validates the form, rejects usernames that differ only in letter
// case from an existing one, and persists the new user. The password is
// stored as entered; see DESIGN.md for why that is not hashed here.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.FullName == "" || in.BirthDate == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return nil, models.NewValidationError("Todos os campos são obrigatórios.")
	}

	if in.Password != in.ConfirmPassword {
		return nil, models.NewValidationError("As senhas não conferem.")
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Este nome de usuário já está em uso.")
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		FullName:  in.FullName,
		BirthDate: in.BirthDate,
		Password:  in.Password,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login matches the username case-insensitively and compares the password.
// Both "user not found" and "wrong password" produce the same generic
// message, so usernames cannot be enumerated through this endpoint.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("Por favor, preencha todos os campos.")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, models.NewUnauthorizedError("Nome de usuário ou senha incorretos.")
	}

	return user, nil
}
