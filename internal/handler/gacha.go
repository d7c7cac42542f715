package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quizdojo/reward-engine/internal/gacha"
	"github.com/quizdojo/reward-engine/internal/logger"
)

// RollRequest represents a quiz completion reported for reward allocation.
type RollRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	Score          int    `json:"score" validate:"gte=0"`
	TotalQuestions int    `json:"total_questions" validate:"gt=0"`
}

// HandleRoll converts a quiz completion into reward drops.
// @Summary Roll rewards for a quiz completion
// @Description Performs the weighted gacha draws for a completed quiz and returns the dropped rewards
// @Tags gacha
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/gacha/roll [post]
func HandleRoll(gachaService gacha.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode roll request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		rewards, err := gachaService.Roll(r.Context(), req.UserID, req.Score, req.TotalQuestions)
		if err != nil {
			log.Error("Roll failed", "error", err, "user_id", req.UserID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: rewards})
	}
}

// HandleGetCatalog returns the full reward catalog.
// @Summary Browse the reward catalog
// @Description Returns every reward definition with its rarity tier
// @Tags gacha
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/gacha/catalog [get]
func HandleGetCatalog(gachaService gacha.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := gachaService.GetCatalog(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to fetch catalog", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: defs})
	}
}
