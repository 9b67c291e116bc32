package validator_test

import (
	"strings"
	"testing"

	"huddle/shared/validator"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title   string `json:"title"    validate:"required,max=100"`
	OpensAt string `json:"opens_at" validate:"omitempty,timeofday"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid body",
			body: `{"title":"Weekly sync","opens_at":"08:00"}`,
		},
		{
			name:    "malformed json",
			body:    `{"title":`,
			wantErr: "failed to decode request body",
		},
		{
			name:    "missing required field",
			body:    `{"opens_at":"08:00"}`,
			wantErr: "Title is required",
		},
		{
			name:    "invalid time of day",
			body:    `{"title":"Weekly sync","opens_at":"25:99"}`,
			wantErr: "OpensAt must be a time of day in HH:MM format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
