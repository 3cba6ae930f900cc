package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request TokenRequest
		wantTag string // empty when valid
	}{
		{"valid", TokenRequest{ClientID: "ats-importer", APIKey: "0123456789"}, ""},
		{"missing client", TokenRequest{APIKey: "0123456789"}, "required"},
		{"missing key", TokenRequest{ClientID: "ats-importer"}, "required"},
		{"short key", TokenRequest{ClientID: "ats-importer", APIKey: "short"}, "min"},
		{"one character client", TokenRequest{ClientID: "c", APIKey: "0123456789"}, "min"},
		{"comma in client", TokenRequest{ClientID: "ats,importer", APIKey: "0123456789"}, "excludesall"},
		{"equals in client", TokenRequest{ClientID: "ats=importer", APIKey: "0123456789"}, "excludesall"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			var fieldErrs validator.ValidationErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantTag, fieldErrs[0].Tag())
		})
	}
}

func TestTokenResponse_JSON(t *testing.T) {
	data, err := json.Marshal(TokenResponse{
		Token:     "abc.def.ghi",
		ClientID:  "ats-importer",
		ExpiresAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc.def.ghi","client_id":"ats-importer","expires_at":"2026-01-02T03:04:05Z"}`, string(data))
}
