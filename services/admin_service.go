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

// PermissionsForRole derives a member's permission bundle from their
// role. The mapping is the single source of truth for both creation and
// role changes, so repeating a role always yields the same bundle.
func PermissionsForRole(role string) models.Permissions {
	return models.Permissions{
		CanAddProduct:    role == models.MemberManager,
		CanEditProduct:   role == models.MemberManager || role == models.MemberEditor,
		CanDeleteProduct: role == models.MemberManager,
		CanViewOrders:    true,
	}
}

// AdminService manages the admin team and the back-office dashboard.
type AdminService struct {
	members  store.AdminMemberStore
	users    store.UserStore
	products store.ProductStore
	orders   store.OrderStore
}

// NewAdminService creates an AdminService.
func NewAdminService(stores *store.Stores) *AdminService {
	return &AdminService{
		members:  stores.Members,
		users:    stores.Users,
		products: stores.Products,
		orders:   stores.Orders,
	}
}

// AddMemberInput carries an add-team-member request.
type AddMemberInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AddMember links a team member to the calling admin. An existing
// account with the email is reused untouched; otherwise a new
// low-privilege account is created with the supplied password.
func (s *AdminService) AddMember(ctx context.Context, adminID primitive.ObjectID, input AddMemberInput) (*models.AdminMember, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, errValidation("Email is required")
	}
	role := input.Role
	if role == "" {
		role = models.MemberEditor
	}
	if !models.ValidMemberRole(role) {
		return nil, errValidation("Invalid role")
	}

	member, err := s.users.FindByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		if input.Password == "" {
			return nil, errValidation("Password is required")
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, errInternal(hashErr)
		}
		member = &models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hashed),
			Role:     models.RoleUser,
		}
		if err := s.users.Insert(ctx, member); err != nil {
			return nil, errInternal(err)
		}
	} else if err != nil {
		return nil, errInternal(err)
	}

	link := &models.AdminMember{
		AdminID:     adminID,
		MemberID:    member.ID,
		MemberName:  member.Name,
		MemberEmail: member.Email,
		Role:        role,
		Permissions: PermissionsForRole(role),
		IsActive:    true,
	}
	if err := s.members.Insert(ctx, link); err != nil {
		return nil, errInternal(err)
	}
	return link, nil
}

// ListMembers returns the calling admin's team, newest first.
func (s *AdminService) ListMembers(ctx context.Context, adminID primitive.ObjectID) ([]models.AdminMember, error) {
	members, err := s.members.FindByAdmin(ctx, adminID)
	if err != nil {
		return nil, errInternal(err)
	}
	return members, nil
}

// UpdateMember changes a team member's role and recomputes their
// permissions with the same rule used at creation. Only the admin who
// created the link may touch it.
func (s *AdminService) UpdateMember(ctx context.Context, requesterID, memberLinkID primitive.ObjectID, role string) (*models.AdminMember, error) {
	link, err := s.members.FindByID(ctx, memberLinkID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Team member not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}
	if link.AdminID != requesterID {
		return nil, errForbidden("Not authorized")
	}

	if role != "" {
		if !models.ValidMemberRole(role) {
			return nil, errValidation("Invalid role")
		}
		link.Role = role
	}
	link.Permissions = PermissionsForRole(link.Role)

	if err := s.members.Update(ctx, link); err != nil {
		return nil, errInternal(err)
	}
	return link, nil
}

// RemoveMember deletes the team link. The member's user account stays.
func (s *AdminService) RemoveMember(ctx context.Context, requesterID, memberLinkID primitive.ObjectID) error {
	link, err := s.members.FindByID(ctx, memberLinkID)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound("Team member not found")
	}
	if err != nil {
		return errInternal(err)
	}
	if link.AdminID != requesterID {
		return errForbidden("Not authorized")
	}
	if err := s.members.Delete(ctx, memberLinkID); err != nil {
		return errInternal(err)
	}
	return nil
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalProducts int64          `json:"totalProducts"`
	TotalOrders   int64          `json:"totalOrders"`
	TotalUsers    int64          `json:"totalUsers"`
	TotalRevenue  float64        `json:"totalRevenue"`
	RecentOrders  []models.Order `json:"recentOrders"`
}

// Stats gathers counts, the ten most recent orders, and the revenue
// over those recent orders.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, errInternal(err)
	}
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, errInternal(err)
	}
	totalUsers, err := s.users.CountByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, errInternal(err)
	}
	recent, err := s.orders.FindRecent(ctx, 10)
	if err != nil {
		return nil, errInternal(err)
	}

	var revenue float64
	for _, order := range recent {
		revenue += order.TotalAmount
	}

	return &DashboardStats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalUsers:    totalUsers,
		TotalRevenue:  revenue,
		RecentOrders:  recent,
	}, nil
}
