package profile

// ProfileCreateOutput is the 201 response for POST /profile.
type ProfileCreateOutput struct {
	Location string `header:"Location" doc:"URL of the created profile"`
	Body     Profile
}

// ProfileGetOutput is the response for GET /profile.
type ProfileGetOutput struct {
	Body Profile
}

// ProfileUpdateOutput is the response for PATCH /profile.
type ProfileUpdateOutput struct {
	Body Profile
}
