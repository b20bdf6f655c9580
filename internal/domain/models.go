// Package domain defines the data model for the vendor management API:
// the Vendor record served by the active in-process store, the User and
// Organization tables of the dormant relational schema, and the Identity
// context derived from a bearer token.
package domain

import (
	"time"
)

// Vendor is a supplier record. The active request path serves vendors from
// the in-process store; the GORM tags describe the equivalent relational
// table, which can be provisioned but is never read or written by handlers.
//
// Fields:
//   - ID: positive integer assigned by the store on creation, immutable.
//   - Name / Category: required, non-empty.
//   - ContactEmail / PhoneNumber / Address: optional, nil when never supplied.
//   - CreatedAt: assigned at creation, immutable.
//   - UserID / OrgID: owning user/org, fixed at creation from the caller's
//     identity context; nil for records created anonymously.
type Vendor struct {
	ID           int       `json:"id"            gorm:"primaryKey"`
	Name         string    `json:"name"          gorm:"type:varchar(255);not null"`
	Category     string    `json:"category"      gorm:"type:varchar(100);not null"`
	ContactEmail *string   `json:"contact_email" gorm:"type:varchar(255)"`
	PhoneNumber  *string   `json:"phone_number"  gorm:"type:varchar(50)"`
	Address      *string   `json:"address"       gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       *int      `json:"user_id"       gorm:"index"`
	OrgID        *int      `json:"org_id"        gorm:"index"`
}

// TableName returns the database table name for Vendor.
func (Vendor) TableName() string { return "vendors" }

// User mirrors the users table of the dormant relational schema. No active
// code path queries it; it exists so the schema can be provisioned.
type User struct {
	ID        int       `json:"id"         gorm:"primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-"          gorm:"type:varchar(255);not null"`
	Name      string    `json:"name"       gorm:"type:varchar(255)"`
	Role      string    `json:"role"       gorm:"type:varchar(50);default:'user'"`
	OrgID     *int      `json:"org_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Organization mirrors the organizations table of the dormant relational
// schema.
type Organization struct {
	ID                 int       `json:"id"                  gorm:"primaryKey"`
	Name               string    `json:"name"                gorm:"type:varchar(255);not null"`
	SubscriptionPlan   string    `json:"subscription_plan"   gorm:"type:varchar(50);default:'free'"`
	SubscriptionStatus string    `json:"subscription_status" gorm:"type:varchar(50);default:'active'"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName returns the database table name for Organization.
func (Organization) TableName() string { return "organizations" }

// Identity is the request-scoped identity context decoded from a bearer
// token. Both references are optional: an anonymous request (no token, or a
// token that failed verification) carries the zero Identity, and a decoded
// token may still lack an org reference.
//
// Identity only scopes vendor queries; it never gates access.
type Identity struct {
	UserID *int
	OrgID  *int
	Email  string
	Name   string
	Role   string
}

// Anonymous reports whether the identity carries no tenant references, i.e.
// no filtering or ownership checks apply.
func (id Identity) Anonymous() bool { return id.UserID == nil && id.OrgID == nil }
