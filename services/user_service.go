package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

// UserService backs the access guard: account creation, credential
// checks, and profile reads. Token minting stays at the HTTP layer.
type UserService struct {
	users store.UserStore
}

// NewUserService creates a UserService.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Phone    string         `json:"phone"`
	Address  models.Address `json:"address"`
}

// Register creates a new customer account.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errValidation("Name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, errValidation("Valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, errValidation("Password must be at least 6 characters")
	}

	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, errValidation("User already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, errInternal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errInternal(err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Phone:    input.Phone,
		Address:  input.Address,
		Role:     models.RoleUser,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, errInternal(err)
	}
	return user, nil
}

// Login checks credentials and returns the account.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errUnauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, errInternal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errUnauthorized("Invalid credentials")
	}
	return user, nil
}

// AdminLogin is Login restricted to admin accounts. A valid customer
// credential still fails, without revealing that the account exists.
func (s *UserService) AdminLogin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, errUnauthorized("Invalid credentials")
	}
	return user, nil
}

// Profile returns the account for an authenticated identity.
func (s *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("User not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}
	return user, nil
}
