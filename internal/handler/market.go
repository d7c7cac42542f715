package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/logger"
	"github.com/quizdojo/reward-engine/internal/market"
)

// CreateListingRequest represents the request to list an instance for exchange.
type CreateListingRequest struct {
	SellerID          string `json:"seller_id" validate:"required"`
	InstanceID        string `json:"instance_id" validate:"required,uuid"`
	AskingDescription string `json:"asking_description" validate:"max=500"`
}

// ClaimListingRequest represents the request to claim an active listing.
type ClaimListingRequest struct {
	ClaimantID        string `json:"claimant_id" validate:"required"`
	OfferedInstanceID string `json:"offered_instance_id" validate:"required,uuid"`
}

// WithdrawListingRequest represents the seller taking a listing down.
type WithdrawListingRequest struct {
	SellerID string `json:"seller_id" validate:"required"`
}

// HandleGetListings returns the public marketplace feed.
// @Summary Browse active listings
// @Tags market
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/market/listings [get]
func HandleGetListings(marketService market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		listings, err := marketService.GetActiveListings(r.Context())
		if err != nil {
			log.Error("Get listings failed", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: listings})
	}
}

// HandleCreateListing lists an owned instance on the marketplace.
// @Summary Create a listing
// @Tags market
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/market/listings [post]
func HandleCreateListing(marketService market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode create listing request", "error", err)
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

		listing, err := marketService.ListItem(r.Context(), req.SellerID, instanceID, req.AskingDescription)
		if err != nil {
			log.Warn("Create listing failed", "error", err, "seller", req.SellerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Data: listing})
	}
}

// HandleClaimListing claims an active listing with a counter-item.
// @Summary Claim a listing
// @Description Claims an active listing by offering one of the claimant's own instances; exactly one concurrent claimant wins
// @Tags market
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/market/listings/{listingID}/claim [post]
func HandleClaimListing(marketService market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		listingID, err := uuid.Parse(chi.URLParam(r, "listingID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidListingID)
			return
		}

		var req ClaimListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode claim listing request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		offeredID, err := uuid.Parse(req.OfferedInstanceID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInstanceID)
			return
		}

		listing, err := marketService.ClaimListing(r.Context(), listingID, req.ClaimantID, offeredID)
		if err != nil {
			log.Warn("Claim listing failed", "error", err, "listing_id", listingID, "claimant", req.ClaimantID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: listing})
	}
}

// HandleWithdrawListing takes an active listing down.
// @Summary Withdraw a listing
// @Tags market
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/market/listings/{listingID}/withdraw [post]
func HandleWithdrawListing(marketService market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		listingID, err := uuid.Parse(chi.URLParam(r, "listingID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidListingID)
			return
		}

		var req WithdrawListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode withdraw listing request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		listing, err := marketService.WithdrawListing(r.Context(), listingID, req.SellerID)
		if err != nil {
			log.Warn("Withdraw listing failed", "error", err, "listing_id", listingID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: listing})
	}
}
