package profile

// ProfileCreateInput for POST /profile
type ProfileCreateInput struct {
	Body struct {
		Email       string `json:"email"                 format:"email" required:"true" doc:"Email address" example:"john@example.com"`
		DisplayName string `json:"displayName,omitempty" maxLength:"30"                 doc:"Display name; derived from the email when omitted" example:"john_doe"`
	}
}

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PATCH /profile
type ProfileUpdateInput struct {
	Body struct {
		Email       *string `json:"email,omitempty"       format:"email" doc:"Email address" example:"john@example.com"`
		DisplayName *string `json:"displayName,omitempty" maxLength:"30" doc:"Display name"  example:"john_doe"`
	}
}

// ProfileDeleteInput for DELETE /profile (no body needed)
type ProfileDeleteInput struct{}
