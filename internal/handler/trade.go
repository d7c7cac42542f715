package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/logger"
	"github.com/quizdojo/reward-engine/internal/trade"
)

// ProposeTradeRequest represents the request to open a trade offer.
type ProposeTradeRequest struct {
	FromUserID             string   `json:"from_user_id" validate:"required"`
	ToUserID               string   `json:"to_user_id" validate:"required"`
	OfferedInstanceIDs     []string `json:"offered_instance_ids" validate:"required,min=1,dive,uuid"`
	RequestedDefinitionIDs []string `json:"requested_definition_ids" validate:"required,min=1,dive,uuid"`
	Message                string   `json:"message" validate:"max=500"`
}

// AcceptTradeRequest represents the responder's acceptance of an offer.
type AcceptTradeRequest struct {
	ResponderID            string   `json:"responder_id" validate:"required"`
	SurrenderedInstanceIDs []string `json:"surrendered_instance_ids" validate:"required,min=1,dive,uuid"`
}

// RejectTradeRequest represents the responder's rejection of an offer.
type RejectTradeRequest struct {
	ResponderID string `json:"responder_id" validate:"required"`
}

// HandleProposeTrade opens a new trade offer.
// @Summary Propose a trade
// @Description Creates a pending trade offer against another user
// @Tags trade
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/trade/offers [post]
func HandleProposeTrade(tradeService trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ProposeTradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode propose trade request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		offered, err := parseUUIDs(req.OfferedInstanceIDs)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInstanceID)
			return
		}
		requested, err := parseUUIDs(req.RequestedDefinitionIDs)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		offer, err := tradeService.ProposeTrade(r.Context(), req.FromUserID, req.ToUserID, offered, requested, req.Message)
		if err != nil {
			log.Warn("Propose trade failed", "error", err, "from", req.FromUserID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Data: offer})
	}
}

// HandleAcceptTrade resolves a pending offer with an atomic swap.
// @Summary Accept a trade offer
// @Description Accepts a pending offer, swapping both instance sets atomically
// @Tags trade
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/trade/offers/{offerID}/accept [post]
func HandleAcceptTrade(tradeService trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		offerID, err := uuid.Parse(chi.URLParam(r, "offerID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidOfferID)
			return
		}

		var req AcceptTradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode accept trade request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		surrendered, err := parseUUIDs(req.SurrenderedInstanceIDs)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInstanceID)
			return
		}

		offer, err := tradeService.AcceptTrade(r.Context(), offerID, req.ResponderID, surrendered)
		if err != nil {
			log.Warn("Accept trade failed", "error", err, "offer_id", offerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: offer})
	}
}

// HandleRejectTrade resolves a pending offer without moving instances.
// @Summary Reject a trade offer
// @Description Rejects a pending offer; no instances move
// @Tags trade
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/trade/offers/{offerID}/reject [post]
func HandleRejectTrade(tradeService trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		offerID, err := uuid.Parse(chi.URLParam(r, "offerID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidOfferID)
			return
		}

		var req RejectTradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode reject trade request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		offer, err := tradeService.RejectTrade(r.Context(), offerID, req.ResponderID)
		if err != nil {
			log.Warn("Reject trade failed", "error", err, "offer_id", offerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: offer})
	}
}

// HandleGetOffers lists the offers where the user is either party.
// @Summary List trade offers for a user
// @Tags trade
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/trade/offers [get]
func HandleGetOffers(tradeService trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		offers, err := tradeService.GetOffersForUser(r.Context(), userID)
		if err != nil {
			log.Error("Get offers failed", "error", err, "user_id", userID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: offers})
	}
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
