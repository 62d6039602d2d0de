package session

import "time"

// SentinelToken is the placeholder bearer value written by the demo
// fallback. The real backend never issues it; hydration recognizes it and
// rebuilds the session from the stored snapshot without a network call.
const SentinelToken = "demo-session-token"

type demoAccount struct {
	identifier string // already normalized
	secret     string
	user       User
}

var demoEpoch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// demoAccounts maps reserved credential pairs to fixed synthetic profiles.
// Matching is exact after identifier normalization, so the table can never
// be hit by real production credentials.
var demoAccounts = []demoAccount{
	{
		identifier: "+15551234567",
		secret:     "demo123",
		user: User{
			ID:               "test-user-123",
			Email:            "demo@mbongopay.io",
			FirstName:        "Demo",
			LastName:         "User",
			MobileNumber:     "+15551234567",
			UserType:         UserTypeConsumer,
			IsEmailVerified:  true,
			IsMobileVerified: true,
			KYCStatus:        KYCVerified,
			CreatedAt:        demoEpoch,
			UpdatedAt:        demoEpoch,
		},
	},
	{
		identifier: "demo@mbongopay.io",
		secret:     "demo123",
		user: User{
			ID:               "test-user-123",
			Email:            "demo@mbongopay.io",
			FirstName:        "Demo",
			LastName:         "User",
			MobileNumber:     "+15551234567",
			UserType:         UserTypeConsumer,
			IsEmailVerified:  true,
			IsMobileVerified: true,
			KYCStatus:        KYCVerified,
			CreatedAt:        demoEpoch,
			UpdatedAt:        demoEpoch,
		},
	},
	{
		identifier: "enterprise@mbongopay.io",
		secret:     "demo123",
		user: User{
			ID:               "test-enterprise-456",
			Email:            "enterprise@mbongopay.io",
			FirstName:        "Enterprise",
			LastName:         "Demo",
			MobileNumber:     "+15559876543",
			UserType:         UserTypeEnterprise,
			IsEmailVerified:  true,
			IsMobileVerified: true,
			KYCStatus:        KYCVerified,
			CreatedAt:        demoEpoch,
			UpdatedAt:        demoEpoch,
		},
	},
}

// matchDemo returns the synthetic profile for a reserved credential pair.
// The identifier must already be normalized. The returned User is a copy;
// the same pair always yields identical values.
func matchDemo(identifier, secret string) (User, bool) {
	for _, acct := range demoAccounts {
		if acct.identifier == identifier && acct.secret == secret {
			return acct.user, true
		}
	}
	return User{}, false
}
