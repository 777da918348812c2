package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"CONVERSOR_BACK-END/internal/dto"
	"CONVERSOR_BACK-END/internal/models"
	"CONVERSOR_BACK-END/internal/store"
	"CONVERSOR_BACK-END/internal/utils"

	"github.com/google/uuid"
)

type ProfileHandler struct {
	profiles *store.ProfileStore
}

func NewProfileHandler(profiles *store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Handle dispatches /api/profile. There is no POST or DELETE: profile rows
// are created by the signup trigger and removed by the auth.users cascade.
func (h *ProfileHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetMe(w, r)
	case http.MethodPut:
		h.Update(w, r)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only GET, PUT are allowed")
	}
}

// GetMe godoc
// @Summary      Get my profile
// @Description  ดูโปรไฟล์ของตัวเอง (ต้องมี Bearer JWT)
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	p, err := h.profiles.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Profile not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profileResponse(p))
}

// Update godoc
// @Summary      Update my display name
// @Description  อัปเดตชื่อที่แสดง (ต้องมี Bearer JWT)
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      dto.ProfileUpdateRequest  true  "Profile update payload"
// @Success      200      {object}  dto.ProfileResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Name == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "no fields to update")
		return
	}

	p, err := h.profiles.UpdateName(r.Context(), userID, *req.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Profile not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profileResponse(p))
}

// ---------- helpers ----------

func profileResponse(p *models.Profile) dto.ProfileResponse {
	var resp dto.ProfileResponse
	resp.Profile.ID = p.ID.String()
	resp.Profile.Name = p.Name
	resp.Profile.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
	return resp
}

func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	// key ตรงกับ AuthMiddleware
	if v := ctx.Value("user_id"); v != nil {
		switch t := v.(type) {
		case uuid.UUID:
			return t, true
		case string:
			if id, err := uuid.Parse(t); err == nil {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}
