package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	valid := RegisterInput{
		Name:     "Meena",
		Email:    "meena@example.com",
		Password: "secret123",
		Phone:    "9876543210",
		Address:  models.Address{Street: "12 Bazaar Road", City: "Madurai", State: "TN", ZipCode: "625001"},
	}

	t.Run("creates a customer with a hashed password", func(t *testing.T) {
		svc := NewUserService(store.NewMemoryStores().Users)
		user, err := svc.Register(ctx, valid)
		require.NoError(t, err)
		assert.False(t, user.ID.IsZero())
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "secret123", user.Password)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewUserService(store.NewMemoryStores().Users)
		_, err := svc.Register(ctx, valid)
		require.NoError(t, err)

		_, err = svc.Register(ctx, valid)
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
		assert.Equal(t, "User already exists", err.(*Error).Message)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := NewUserService(store.NewMemoryStores().Users)
		cases := []struct {
			name   string
			mutate func(*RegisterInput)
		}{
			{"missing name", func(in *RegisterInput) { in.Name = " " }},
			{"missing email", func(in *RegisterInput) { in.Email = "" }},
			{"short password", func(in *RegisterInput) { in.Password = "12345" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := valid
				tc.mutate(&input)
				_, err := svc.Register(ctx, input)
				assert.Equal(t, KindValidation, KindOf(err))
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(store.NewMemoryStores().Users)
	_, err := svc.Register(ctx, RegisterInput{Name: "Meena", Email: "meena@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "meena@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "meena@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "meena@example.com", "wrong")
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	svc := NewUserService(stores.Users)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: string(hashed), Role: models.RoleAdmin}
	require.NoError(t, stores.Users.Insert(ctx, admin))
	customer := &models.User{Name: "Meena", Email: "meena@example.com", Password: string(hashed), Role: models.RoleUser}
	require.NoError(t, stores.Users.Insert(ctx, customer))

	t.Run("admin account", func(t *testing.T) {
		user, err := svc.AdminLogin(ctx, "admin@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("customer account is rejected with the generic message", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, "meena@example.com", "secret123")
		require.Error(t, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
		assert.Equal(t, "Invalid credentials", err.(*Error).Message)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(store.NewMemoryStores().Users)
	user, err := svc.Register(ctx, RegisterInput{Name: "Meena", Email: "meena@example.com", Password: "secret123"})
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.Profile(ctx, primitive.NewObjectID())
	assert.Equal(t, KindNotFound, KindOf(err))
}
