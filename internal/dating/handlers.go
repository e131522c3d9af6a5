package dating

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/imadgeboyega/kiekky-matching/internal/auth"
	"github.com/imadgeboyega/kiekky-matching/internal/common/utils"
	"go.uber.org/zap"
)

const (
	defaultDiscoverLimit = 20
	defaultHotpicksLimit = 10
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// respondWithServiceError maps service errors to HTTP responses
func (h *Handler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCannotScoreSelf), errors.Is(err, ErrCannotViewSelf), errors.Is(err, ErrInvalidAction):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error(fallback, zap.String("path", r.URL.Path), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func pathUserID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	candidateID, ok := pathUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	score, err := h.service.GetCompatibility(r.Context(), userID, candidateID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to calculate compatibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, score)
}

func (h *Handler) GetMatchAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	candidateID, ok := pathUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	analysis, err := h.service.GetMatchAnalysis(r.Context(), userID, candidateID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to analyze match")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, analysis)
}

func (h *Handler) GetMatchInsights(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	candidateID, ok := pathUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	insights, err := h.service.GetMatchInsights(r.Context(), userID, candidateID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to build match insights")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, insights)
}

func (h *Handler) AnalyzeOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	analysis, err := h.service.AnalyzeProfile(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to analyze profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, analysis)
}

func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	params := &DiscoverParams{
		Limit:  queryInt(r, "limit", defaultDiscoverLimit),
		Offset: queryInt(r, "offset", 0),
	}
	if err := utils.ValidateStruct(params); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Discover(r.Context(), userID, params)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to discover profiles")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req RecordViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.RecordProfileView(r.Context(), userID, &req)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to record view")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetTasteProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	taste, err := h.service.GetTasteProfile(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to get taste profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, taste)
}

func (h *Handler) RefreshTasteProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	taste, err := h.service.RefreshTasteProfile(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to refresh taste profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, taste)
}

func (h *Handler) ResetTasteProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.service.ResetTasteProfile(r.Context(), userID); err != nil {
		h.respondWithServiceError(w, r, err, "Failed to reset taste profile")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Taste profile reset")
}

func (h *Handler) MatchesTasteProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	candidateID, ok := pathUserID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.service.MatchesTasteProfile(r.Context(), userID, candidateID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to match taste profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) GetHotpicks(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	params := &GetHotpicksParams{
		Limit:      queryInt(r, "limit", defaultHotpicksLimit),
		UnseenOnly: r.URL.Query().Get("unseen") == "true",
	}
	if err := utils.ValidateStruct(params); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	hotpicks, err := h.service.GetHotpicks(r.Context(), userID, params)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to get hotpicks")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, hotpicks)
}

func (h *Handler) GenerateHotpicks(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	hotpicks, err := h.service.GenerateHotpicks(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to generate hotpicks")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, hotpicks)
}
