package upload

// Request is the JSON upload payload. Data carries the image
// base64-encoded; multipart uploads bypass this struct.
type Request struct {
	EventID string `json:"event_id" validate:"required,slug"`
	UserID  string `json:"user_id" validate:"omitempty,max=64"`
	Data    string `json:"data" validate:"required"`
}
