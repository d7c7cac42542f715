package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/gift"
	"github.com/quizdojo/reward-engine/internal/logger"
)

// SendGiftRequest represents the request to gift an owned reward instance.
type SendGiftRequest struct {
	SenderID   string `json:"sender_id" validate:"required"`
	InstanceID string `json:"instance_id" validate:"required,uuid"`
	Recipient  string `json:"recipient" validate:"required,max=100"`
	Message    string `json:"message" validate:"max=500"`
}

// HandleSendGift transfers one owned instance to a named recipient.
// @Summary Send a gift
// @Description Transfers one owned reward instance to the recipient resolved from a username or display name
// @Tags gift
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/gift/send [post]
func HandleSendGift(giftService gift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SendGiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode gift request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		instanceID, err := uuid.Parse(req.InstanceID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInstanceID)
			return
		}

		sent, err := giftService.SendGift(r.Context(), req.SenderID, instanceID, req.Recipient, req.Message)
		if err != nil {
			log.Warn("Send gift failed", "error", err, "sender", req.SenderID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: sent})
	}
}
