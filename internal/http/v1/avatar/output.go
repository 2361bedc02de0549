package avatar

// SessionOpenOutput for POST /avatar/session (201 Created)
type SessionOpenOutput struct {
	Location string `header:"Location" doc:"URL of the editing session"`
	Body     EditSession
}

// SessionGetOutput for GET /avatar/session/{id}
type SessionGetOutput struct {
	Body EditSession
}

// SessionAdjustOutput for PATCH /avatar/session/{id}
type SessionAdjustOutput struct {
	Body EditSession
}

// SessionSaveOutput for POST /avatar/session/{id}/save
type SessionSaveOutput struct {
	Body SavedAvatar
}
