package dto

// รับ Body จาก PUT /api/preferences
type PreferenceUpsertRequest struct {
	DefaultFrom string `json:"default_from"`
	DefaultTo   string `json:"default_to"`
}

// ตอบกลับจาก GET/PUT /api/preferences
type PreferenceResponse struct {
	Preference struct {
		UserID      string `json:"user_id"`
		DefaultFrom string `json:"default_from"`
		DefaultTo   string `json:"default_to"`
		UpdatedAt   string `json:"updated_at"` // RFC3339
	} `json:"preference"`
}
