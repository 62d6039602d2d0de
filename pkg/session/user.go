package session

import (
	"encoding/json"
	"time"
)

// KYC verification states reported by the platform.
const (
	KYCPending  = "pending"
	KYCVerified = "verified"
	KYCFailed   = "failed"
	KYCApproved = "approved"
)

// Account types accepted by the signup endpoints.
const (
	UserTypeConsumer   = "consumer"
	UserTypeBusiness   = "business"
	UserTypeEnterprise = "enterprise"
)

// User is the canonical profile record held by a session. Backend payloads
// arrive in either snake_case or camelCase; decodePayload reconciles both
// into this one shape so nothing downstream has to care.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	MobileNumber     string    `json:"mobileNumber"`
	UserType         string    `json:"userType"`
	IsEmailVerified  bool      `json:"isEmailVerified"`
	IsMobileVerified bool      `json:"isMobileVerified"`
	KYCStatus        string    `json:"kycStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// userPayload accepts every field spelling the legacy backends emit for the
// same logical field. firstString below picks the first non-empty variant.
type userPayload struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Email string `json:"email"`

	FirstName      string `json:"firstName"`
	FirstNameSnake string `json:"first_name"`

	LastName      string `json:"lastName"`
	LastNameSnake string `json:"last_name"`

	MobileNumber      string `json:"mobileNumber"`
	MobileNumberSnake string `json:"mobile_number"`
	Mobile            string `json:"mobile"`
	PhoneNumber       string `json:"phoneNumber"`
	PhoneNumberSnake  string `json:"phone_number"`

	UserType      string `json:"userType"`
	UserTypeSnake string `json:"user_type"`

	IsEmailVerified       *bool `json:"isEmailVerified"`
	IsEmailVerifiedSnake  *bool `json:"is_email_verified"`
	IsMobileVerified      *bool `json:"isMobileVerified"`
	IsMobileVerifiedSnake *bool `json:"is_mobile_verified"`

	KYCStatus      string `json:"kycStatus"`
	KYCStatusSnake string `json:"kyc_status"`

	CreatedAt      string `json:"createdAt"`
	CreatedAtSnake string `json:"created_at"`
	UpdatedAt      string `json:"updatedAt"`
	UpdatedAtSnake string `json:"updated_at"`
}

// decodePayload unmarshals a raw user object and reconciles field spellings
// into a canonical User. It is the only place payload shape is interpreted.
func decodePayload(raw json.RawMessage) (User, error) {
	var p userPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return User{}, err
	}
	return p.canonical(), nil
}

func (p userPayload) canonical() User {
	return User{
		ID:               firstString(p.ID, p.UserID),
		Email:            p.Email,
		FirstName:        firstString(p.FirstName, p.FirstNameSnake),
		LastName:         firstString(p.LastName, p.LastNameSnake),
		MobileNumber:     firstString(p.MobileNumber, p.MobileNumberSnake, p.Mobile, p.PhoneNumber, p.PhoneNumberSnake),
		UserType:         firstString(p.UserType, p.UserTypeSnake),
		IsEmailVerified:  firstBool(p.IsEmailVerified, p.IsEmailVerifiedSnake),
		IsMobileVerified: firstBool(p.IsMobileVerified, p.IsMobileVerifiedSnake),
		KYCStatus:        firstString(p.KYCStatus, p.KYCStatusSnake),
		CreatedAt:        parseTimestamp(firstString(p.CreatedAt, p.CreatedAtSnake)),
		UpdatedAt:        parseTimestamp(firstString(p.UpdatedAt, p.UpdatedAtSnake)),
	}
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstBool(values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return false
}

// parseTimestamp tolerates the timestamp formats seen across backends and
// returns the zero time when none match.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
