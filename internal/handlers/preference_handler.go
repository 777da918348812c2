package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"CONVERSOR_BACK-END/internal/currency"
	"CONVERSOR_BACK-END/internal/dto"
	"CONVERSOR_BACK-END/internal/models"
	"CONVERSOR_BACK-END/internal/store"
	"CONVERSOR_BACK-END/internal/utils"
)

type PreferenceHandler struct {
	preferences *store.PreferenceStore
}

func NewPreferenceHandler(preferences *store.PreferenceStore) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// Handle dispatches /api/preferences. PUT covers both first save and later
// changes — the store upserts.
func (h *PreferenceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPut:
		h.Put(w, r)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only GET, PUT are allowed")
	}
}

// Get godoc
// @Summary      Get my default currency pair
// @Description  ดูคู่สกุลเงินเริ่มต้นของตัวเอง (ต้องมี Bearer JWT)
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PreferenceResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/preferences [get]
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	p, err := h.preferences.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No preference saved yet")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, preferenceResponse(p))
}

// Put godoc
// @Summary      Save my default currency pair
// @Description  บันทึกคู่สกุลเงินเริ่มต้น (ต้องมี Bearer JWT)
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      dto.PreferenceUpsertRequest  true  "Currency pair payload"
// @Success      200      {object}  dto.PreferenceResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/preferences [put]
func (h *PreferenceHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	var req dto.PreferenceUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	from := currency.Normalize(req.DefaultFrom)
	to := currency.Normalize(req.DefaultTo)
	if from == "" || to == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "default_from and default_to are required")
		return
	}
	if !currency.IsSupported(from) || !currency.IsSupported(to) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request",
			"unsupported currency code, use one of: "+strings.Join(currency.Codes(), ", "))
		return
	}

	p, err := h.preferences.Upsert(r.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, store.ErrNoProfile) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Profile not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, preferenceResponse(p))
}

func preferenceResponse(p *models.Preference) dto.PreferenceResponse {
	var resp dto.PreferenceResponse
	resp.Preference.UserID = p.UserID.String()
	resp.Preference.DefaultFrom = p.DefaultFrom
	resp.Preference.DefaultTo = p.DefaultTo
	resp.Preference.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	return resp
}
