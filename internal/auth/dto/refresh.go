package dto

// RefreshInput carries the refresh token for both the refresh and logout
// endpoints; the token itself is the credential.
type RefreshInput struct {
	Refresh string `json:"refresh"`
}
