package avatar

// SessionOpenInput for POST /avatar/session. The image is the raw request
// body; its MIME type comes from the Content-Type header.
type SessionOpenInput struct {
	ContentType string `header:"Content-Type" doc:"MIME type of the uploaded image" example:"image/jpeg"`
	RawBody     []byte
}

// SessionAdjustInput for PATCH /avatar/session/{id}
type SessionAdjustInput struct {
	SessionID string `path:"id" doc:"Editing session identifier"`
	Body      struct {
		ZoomPercent *int   `json:"zoomPercent,omitempty" doc:"Requested zoom level, clamped to [100,200]" example:"150"`
		Rotate      string `json:"rotate,omitempty"      enum:"left,right"                                doc:"Quarter-turn direction"`
		Reset       bool   `json:"reset,omitempty"       doc:"Restore default zoom and rotation"`
	}
}

// SessionGetInput for GET /avatar/session/{id}
type SessionGetInput struct {
	SessionID string `path:"id" doc:"Editing session identifier"`
}

// SessionSaveInput for POST /avatar/session/{id}/save
type SessionSaveInput struct {
	SessionID string `path:"id" doc:"Editing session identifier"`
}

// SessionCancelInput for DELETE /avatar/session/{id}
type SessionCancelInput struct {
	SessionID string `path:"id" doc:"Editing session identifier"`
}

// RemoveInput for DELETE /avatar (no body needed)
type RemoveInput struct{}
