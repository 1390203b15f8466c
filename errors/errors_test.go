package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without detail",
			err:      New(ValidationError, "Invalid submission", ""),
			expected: "VALIDATION_ERROR: Invalid submission",
		},
		{
			name:     "with detail",
			err:      New(ServerError, "Failed to render notification", "template execution failed"),
			expected: "SERVER_ERROR: Failed to render notification (template execution failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected int
	}{
		{"validation", ValidationFailed("Missing name or email", nil), http.StatusBadRequest},
		{"method not allowed", MethodNotAllowed(), http.StatusMethodNotAllowed},
		{"missing config", MissingConfig([]string{"RESEND_API_KEY"}), http.StatusInternalServerError},
		{"delivery", DeliveryFailed(map[string]interface{}{"message": "invalid from"}), http.StatusBadGateway},
		{"internal", InternalServerError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.GetHTTPStatus())
		})
	}
}

func TestMissingConfigMessage(t *testing.T) {
	err := MissingConfig([]string{"RESEND_API_KEY", "FROM_EMAIL"})
	assert.Equal(t, "Missing env: RESEND_API_KEY, FROM_EMAIL", err.Message)
}

func TestMethodNotAllowedMessage(t *testing.T) {
	assert.Equal(t, "Method not allowed", MethodNotAllowed().Message)
}

func TestDeliveryFailedCarriesPayload(t *testing.T) {
	payload := map[string]interface{}{"statusCode": 422, "message": "The from address is not verified"}
	err := DeliveryFailed(payload)
	assert.Equal(t, "Resend error", err.Message)
	assert.Equal(t, payload, err.Payload)
}

func TestValidationFailedCarriesFields(t *testing.T) {
	fields := map[string]string{"email": "Please use a work email address"}
	err := ValidationFailed("Invalid fields: email", fields)
	assert.Equal(t, fields, err.Fields)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	raw := fmt.Errorf("connection refused")
	err := Wrap(raw, DeliveryError, "Delivery failed")
	assert.Equal(t, DeliveryError, err.Type)
	assert.Equal(t, "connection refused", err.Detail)
	assert.Equal(t, raw, err.Raw)
	assert.Equal(t, http.StatusBadGateway, err.GetHTTPStatus())

	assert.Nil(t, Wrap(nil, ServerError, "ignored"))
}
