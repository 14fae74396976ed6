package models

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Role is the access level of a user record.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleOwner    Role = "owner"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleOwner:
		return true
	}
	return false
}

// SubscriptionType classifies how a user was onboarded.
type SubscriptionType string

const (
	TypeSubscription    SubscriptionType = "Subscription"
	TypeNonSubscription SubscriptionType = "Non-subscription"
	TypeUnassigned      SubscriptionType = "Unassigned"
)

// ValidSubscriptionType reports whether t is one of the known types.
func ValidSubscriptionType(t SubscriptionType) bool {
	switch t {
	case TypeSubscription, TypeNonSubscription, TypeUnassigned:
		return true
	}
	return false
}

// UserRecord is the persistent user entity. The password hash is stored under
// the legacy "password" field name in Mongo and is never serialized to JSON.
type UserRecord struct {
	ID           string           `bson:"_id,omitempty" json:"id"`
	Name         string           `bson:"name" json:"name"`
	Email        string           `bson:"email" json:"email"`
	PasswordHash string           `bson:"password" json:"-"`
	Role         Role             `bson:"role" json:"role"`
	Type         SubscriptionType `bson:"type" json:"type"`
	Country      string           `bson:"country" json:"country"`
	SignedUp     time.Time        `bson:"signedUp" json:"signedUp"`
	UserID       string           `bson:"userId" json:"userId"`
	Avatar       string           `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt    time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// NewUserRecord builds a record with every optional field defaulted: employee
// role, unassigned type, signup time = now, and a fresh display user id.
// Defaulting happens here, at construction, not in handlers.
func NewUserRecord(name, email, passwordHash string) *UserRecord {
	now := time.Now().UTC()
	return &UserRecord{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleEmployee,
		Type:         TypeUnassigned,
		Country:      "",
		SignedUp:     now,
		UserID:       NewDisplayID(),
		Avatar:       "",
	}
}

// NewDisplayID returns a random 5-digit display identifier. It is not
// guaranteed unique; the store id is the real key.
func NewDisplayID() string {
	return fmt.Sprintf("%d", 10000+rand.IntN(90000))
}

// PublicUser is the redacted projection of a UserRecord that may leave the
// service boundary.
type PublicUser struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      Role             `json:"role"`
	Type      SubscriptionType `json:"type"`
	Country   string           `json:"country"`
	SignedUp  time.Time        `json:"signedUp"`
	UserID    string           `json:"userId"`
	Avatar    string           `json:"avatar,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Public strips the password hash from a record.
func (u *UserRecord) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Type:      u.Type,
		Country:   u.Country,
		SignedUp:  u.SignedUp,
		UserID:    u.UserID,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// SignedUpOrCreated resolves the signup timestamp, falling back to createdAt
// for records imported without one. Zero when both are missing.
func (u PublicUser) SignedUpOrCreated() time.Time {
	if !u.SignedUp.IsZero() {
		return u.SignedUp
	}
	return u.CreatedAt
}

// RoleOrDefault returns the role for display, defaulting to Employee.
func (u PublicUser) RoleOrDefault() string {
	if u.Role == "" {
		return "Employee"
	}
	return string(u.Role)
}

// TypeOrDefault returns the subscription type for display, defaulting to
// Unassigned.
func (u PublicUser) TypeOrDefault() string {
	if u.Type == "" {
		return string(TypeUnassigned)
	}
	return string(u.Type)
}

// DashboardStats is the payload of GET /api/dashboard/stats. Only TotalUsers
// is live; the rest are static placeholder metrics the dashboard expects.
type DashboardStats struct {
	TotalUsers int64   `json:"totalUsers"`
	Sessions   float64 `json:"sessions"`
	ClickRate  float64 `json:"clickRate"`
	Pageviews  int64   `json:"pageviews"`
}
