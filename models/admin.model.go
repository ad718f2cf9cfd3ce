package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin team member roles.
const (
	MemberManager = "manager"
	MemberEditor  = "editor"
	MemberViewer  = "viewer"
)

// ValidMemberRole reports whether r is a known team member role.
func ValidMemberRole(r string) bool {
	return r == MemberManager || r == MemberEditor || r == MemberViewer
}

// Permissions is the bundle derived from a member's role.
type Permissions struct {
	CanAddProduct    bool `bson:"can_add_product" json:"canAddProduct"`
	CanEditProduct   bool `bson:"can_edit_product" json:"canEditProduct"`
	CanDeleteProduct bool `bson:"can_delete_product" json:"canDeleteProduct"`
	CanViewOrders    bool `bson:"can_view_orders" json:"canViewOrders"`
}

// AdminMember links an admin to a managed team member account.
type AdminMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AdminID     primitive.ObjectID `bson:"admin_id" json:"adminId"`
	MemberID    primitive.ObjectID `bson:"member_id" json:"memberId"`
	MemberName  string             `bson:"member_name,omitempty" json:"memberName,omitempty"`
	MemberEmail string             `bson:"member_email,omitempty" json:"memberEmail,omitempty"`
	Role        string             `bson:"role" json:"role"`
	Permissions Permissions        `bson:"permissions" json:"permissions"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
