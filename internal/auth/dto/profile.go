package dto

// UpdateProfileInput is a partial update; nil means "leave unchanged".
// Only first and last name are writable through the profile endpoint.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}
