package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quizdojo/reward-engine/internal/domain"
)

func TestHandleSendGift(t *testing.T) {
	instanceID := uuid.New()

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockGiftService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			setupMocks:     nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Invalid Instance ID",
			reqBody: SendGiftRequest{
				SenderID:   "sender-1",
				InstanceID: "not-a-uuid",
				Recipient:  "alice",
			},
			setupMocks:     nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be a valid UUID",
		},
		{
			name: "Recipient Not Found",
			reqBody: SendGiftRequest{
				SenderID:   "sender-1",
				InstanceID: instanceID.String(),
				Recipient:  "nobody",
			},
			setupMocks: func(mg *MockGiftService) {
				mg.On("SendGift", mock.Anything, "sender-1", instanceID, "nobody", "").Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name: "Ambiguous Recipient",
			reqBody: SendGiftRequest{
				SenderID:   "sender-1",
				InstanceID: instanceID.String(),
				Recipient:  "alex",
			},
			setupMocks: func(mg *MockGiftService) {
				mg.On("SendGift", mock.Anything, "sender-1", instanceID, "alex", "").Return(nil, domain.ErrAmbiguousRecipient)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgAmbiguousError,
		},
		{
			name: "Not Owned",
			reqBody: SendGiftRequest{
				SenderID:   "sender-1",
				InstanceID: instanceID.String(),
				Recipient:  "alice",
			},
			setupMocks: func(mg *MockGiftService) {
				mg.On("SendGift", mock.Anything, "sender-1", instanceID, "alice", "").Return(nil, domain.ErrNotOwned)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   ErrMsgNotOwnedError,
		},
		{
			name: "Success",
			reqBody: SendGiftRequest{
				SenderID:   "sender-1",
				InstanceID: instanceID.String(),
				Recipient:  "alice",
				Message:    "enjoy",
			},
			setupMocks: func(mg *MockGiftService) {
				mg.On("SendGift", mock.Anything, "sender-1", instanceID, "alice", "enjoy").Return(&domain.Gift{
					ID:              uuid.MustParse("00000000-0000-0000-0000-000000000002"),
					SenderUserID:    "sender-1",
					RecipientUserID: "recipient-1",
					InstanceID:      instanceID,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "00000000-0000-0000-0000-000000000002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGift := new(MockGiftService)
			if tt.setupMocks != nil {
				tt.setupMocks(mockGift)
			}

			var body []byte
			if s, ok := tt.reqBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.reqBody)
			}

			req := httptest.NewRequest("POST", "/api/v1/gift/send", bytes.NewBuffer(body))
			rec := httptest.NewRecorder()

			HandleSendGift(mockGift)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			mockGift.AssertExpectations(t)
		})
	}
}
