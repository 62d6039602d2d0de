package identity

import "time"

// KYC verification states.
const (
	KYCPending  = "pending"
	KYCVerified = "verified"
	KYCFailed   = "failed"
	KYCApproved = "approved"
)

// Account types accepted at signup.
const (
	UserTypeConsumer   = "consumer"
	UserTypeBusiness   = "business"
	UserTypeEnterprise = "enterprise"
)

// User represents a registered account holder.
type User struct {
	ID               string
	Email            string
	FirstName        string
	LastName         string
	MobileNumber     string
	UserType         string
	PasswordHash     []byte
	IsEmailVerified  bool
	IsMobileVerified bool
	KYCStatus        string
	TokenVersion     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastLogin        time.Time
}

// SignupInput carries the profile fields submitted at registration.
type SignupInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	MobileNumber string
	UserType     string
}

// Credentials identifies a login attempt by email or mobile number.
type Credentials struct {
	Email        string
	MobileNumber string
	Password     string
}
