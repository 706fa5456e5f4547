package dto

import (
	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
)

// MeResponse describes the authenticated caller. The secret key is never echoed back.
type MeResponse struct {
	Username  string `json:"username"`
	UserID    string `json:"user_id"`
	ProfileID string `json:"profile_id"`
	Algorithm string `json:"algorithm"`
}

// MapAssertionToMeResponse converts a verification assertion to the public response shape.
func MapAssertionToMeResponse(assertion *credentialDomain.Assertion) MeResponse {
	return MeResponse{
		Username:  assertion.Username,
		UserID:    assertion.UserID.String(),
		ProfileID: assertion.ProfileID.String(),
		Algorithm: assertion.Algorithm,
	}
}
