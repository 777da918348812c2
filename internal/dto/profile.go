package dto

// ตอบกลับจาก GET /api/profile
type ProfileResponse struct {
	Profile struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		CreatedAt string `json:"created_at"` // RFC3339
	} `json:"profile"`
}

// ProfileUpdateRequest — only the display name is writable; id and
// created_at are owned by the provisioning trigger.
type ProfileUpdateRequest struct {
	Name *string `json:"name"` // "" is allowed, matches the signup default
}
