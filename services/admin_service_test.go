package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"nambikkai-store/models"
	"nambikkai-store/store"
)

func TestPermissionsForRole(t *testing.T) {
	cases := []struct {
		role string
		want models.Permissions
	}{
		{models.MemberManager, models.Permissions{CanAddProduct: true, CanEditProduct: true, CanDeleteProduct: true, CanViewOrders: true}},
		{models.MemberEditor, models.Permissions{CanEditProduct: true, CanViewOrders: true}},
		{models.MemberViewer, models.Permissions{CanViewOrders: true}},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			assert.Equal(t, tc.want, PermissionsForRole(tc.role))
			// Deriving twice from the same role changes nothing.
			assert.Equal(t, PermissionsForRole(tc.role), PermissionsForRole(tc.role))
		})
	}
}

func newAdminFixture(t *testing.T) (*AdminService, *store.Stores, primitive.ObjectID) {
	t.Helper()
	stores := store.NewMemoryStores()
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, stores.Users.Insert(context.Background(), admin))
	return NewAdminService(stores), stores, admin.ID
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fresh low-privilege account", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		link, err := svc.AddMember(ctx, adminID, AddMemberInput{
			Email: "staff@example.com", Name: "Staff", Password: "secret123", Role: models.MemberManager,
		})
		require.NoError(t, err)
		assert.Equal(t, adminID, link.AdminID)
		assert.Equal(t, models.MemberManager, link.Role)
		assert.True(t, link.Permissions.CanAddProduct)
		assert.True(t, link.IsActive)

		account, err := stores.Users.FindByEmail(ctx, "staff@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, account.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("secret123")))
	})

	t.Run("reuses an existing account untouched", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		existing := seedUser(t, stores, "Meena", "meena@example.com")

		link, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com", Role: models.MemberViewer})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, link.MemberID)
		assert.Equal(t, "Meena", link.MemberName)
		assert.False(t, link.Permissions.CanEditProduct)
		assert.True(t, link.Permissions.CanViewOrders)
	})

	t.Run("role defaults to editor", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		seedUser(t, stores, "Meena", "meena@example.com")

		link, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com"})
		require.NoError(t, err)
		assert.Equal(t, models.MemberEditor, link.Role)
		assert.True(t, link.Permissions.CanEditProduct)
		assert.False(t, link.Permissions.CanAddProduct)
	})

	t.Run("rejects a missing email", func(t *testing.T) {
		svc, _, adminID := newAdminFixture(t)
		_, err := svc.AddMember(ctx, adminID, AddMemberInput{})
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		seedUser(t, stores, "Meena", "meena@example.com")
		_, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com", Role: "owner"})
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("new account needs a password", func(t *testing.T) {
		svc, _, adminID := newAdminFixture(t)
		_, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "new@example.com"})
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestListMembers(t *testing.T) {
	svc, stores, adminID := newAdminFixture(t)
	ctx := context.Background()
	otherAdmin := &models.User{Name: "Other", Email: "other@example.com", Role: models.RoleAdmin}
	require.NoError(t, stores.Users.Insert(ctx, otherAdmin))

	seedUser(t, stores, "Meena", "meena@example.com")
	seedUser(t, stores, "Ravi", "ravi@example.com")
	_, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com"})
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, otherAdmin.ID, AddMemberInput{Email: "ravi@example.com"})
	require.NoError(t, err)

	members, err := svc.ListMembers(ctx, adminID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "meena@example.com", members[0].MemberEmail)
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("role change recomputes permissions", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		seedUser(t, stores, "Meena", "meena@example.com")
		link, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com", Role: models.MemberViewer})
		require.NoError(t, err)

		updated, err := svc.UpdateMember(ctx, adminID, link.ID, models.MemberManager)
		require.NoError(t, err)
		assert.Equal(t, models.MemberManager, updated.Role)
		assert.Equal(t, PermissionsForRole(models.MemberManager), updated.Permissions)
	})

	t.Run("only the owning admin may update", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		seedUser(t, stores, "Meena", "meena@example.com")
		link, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com"})
		require.NoError(t, err)

		_, err = svc.UpdateMember(ctx, primitive.NewObjectID(), link.ID, models.MemberViewer)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("unknown link", func(t *testing.T) {
		svc, _, adminID := newAdminFixture(t)
		_, err := svc.UpdateMember(ctx, adminID, primitive.NewObjectID(), models.MemberViewer)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		seedUser(t, stores, "Meena", "meena@example.com")
		link, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com"})
		require.NoError(t, err)

		_, err = svc.UpdateMember(ctx, adminID, link.ID, "owner")
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the link but keeps the account", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		member := seedUser(t, stores, "Meena", "meena@example.com")
		link, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com"})
		require.NoError(t, err)

		require.NoError(t, svc.RemoveMember(ctx, adminID, link.ID))

		members, err := svc.ListMembers(ctx, adminID)
		require.NoError(t, err)
		assert.Empty(t, members)

		_, err = stores.Users.FindByID(ctx, member.ID)
		assert.NoError(t, err)
	})

	t.Run("only the owning admin may remove", func(t *testing.T) {
		svc, stores, adminID := newAdminFixture(t)
		seedUser(t, stores, "Meena", "meena@example.com")
		link, err := svc.AddMember(ctx, adminID, AddMemberInput{Email: "meena@example.com"})
		require.NoError(t, err)

		err = svc.RemoveMember(ctx, primitive.NewObjectID(), link.ID)
		assert.Equal(t, KindForbidden, KindOf(err))
	})
}

func TestDashboardStats(t *testing.T) {
	svc, stores, _ := newAdminFixture(t)
	ctx := context.Background()

	user := seedUser(t, stores, "Meena", "meena@example.com")
	seedUser(t, stores, "Ravi", "ravi@example.com")
	product := seedProduct(t, stores, "Foxtail Millet", 100, 50)
	seedProduct(t, stores, "Toor Dal", 80, 50)

	cartSvc := NewCartService(stores.Carts, stores.Products)
	orderSvc := NewOrderService(stores, cartSvc, nil, zerolog.Nop())
	for _, qty := range []int{2, 3} {
		_, err := cartSvc.AddItem(ctx, user.ID, product.ID, qty)
		require.NoError(t, err)
		_, err = orderSvc.Checkout(ctx, user.ID, nil, "")
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalOrders)
	// The seeded admin is not a customer.
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, 2*100.0+3*100.0, stats.TotalRevenue)
	require.Len(t, stats.RecentOrders, 2)
	assert.Equal(t, 300.0, stats.RecentOrders[0].TotalAmount)
}
