package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quizdojo/reward-engine/internal/logger"
	"github.com/quizdojo/reward-engine/internal/user"
)

// RegisterUserRequest represents the request to create a user.
type RegisterUserRequest struct {
	Username    string `json:"username" validate:"required,max=100"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

// MarkRewardsSeenRequest represents the request to clear unread reward flags.
type MarkRewardsSeenRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleRegisterUser creates a new user.
// @Summary Register a user
// @Tags user
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/user/register [post]
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register user request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		created, err := userService.RegisterUser(r.Context(), req.Username, req.DisplayName)
		if err != nil {
			log.Warn("Register user failed", "error", err, "username", req.Username)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Data: created})
	}
}

// HandleResolveUser maps a human-entered identifier to exactly one user.
// @Summary Resolve an identifier
// @Tags user
// @Produce json
// @Param identifier query string true "Username, display name, or user ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/user/resolve [get]
func HandleResolveUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		identifier := r.URL.Query().Get("identifier")
		if identifier == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "identifier"))
			return
		}

		resolved, err := userService.Resolve(r.Context(), identifier)
		if err != nil {
			log.Warn("Resolve failed", "error", err, "identifier", identifier)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: resolved})
	}
}

// HandleGetInventory returns the user's owned rewards, newest first.
// @Summary Get inventory
// @Tags user
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/user/inventory [get]
func HandleGetInventory(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		rewards, err := userService.GetInventory(r.Context(), userID)
		if err != nil {
			log.Warn("Get inventory failed", "error", err, "user_id", userID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: rewards})
	}
}

// HandleMarkRewardsSeen clears the unread flag on all of the user's rewards.
// @Summary Mark rewards as seen
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/user/inventory/seen [post]
func HandleMarkRewardsSeen(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req MarkRewardsSeenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode mark rewards seen request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		if err := userService.MarkRewardsSeen(r.Context(), req.UserID); err != nil {
			log.Warn("Mark rewards seen failed", "error", err, "user_id", req.UserID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRewardsSeenSuccess})
	}
}
