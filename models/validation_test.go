package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegisterAppRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         RegisterAppRequest
		expectError bool
		fields      []string
	}{
		{
			name: "valid request",
			req: RegisterAppRequest{
				Name:  "ms-emprestimo-pessoal",
				AppID: "ac763fd5-d025-40cf-8b05-14bfc3cc299a",
			},
		},
		{
			name:        "missing name",
			req:         RegisterAppRequest{AppID: "ac763fd5-d025-40cf-8b05-14bfc3cc299a"},
			expectError: true,
			fields:      []string{"name"},
		},
		{
			name:        "blank fields",
			req:         RegisterAppRequest{Name: "   ", AppID: "\t"},
			expectError: true,
			fields:      []string{"name", "appId"},
		},
		{
			name: "name too long",
			req: RegisterAppRequest{
				Name:  strings.Repeat("a", 201),
				AppID: "ac763fd5-d025-40cf-8b05-14bfc3cc299a",
			},
			expectError: true,
			fields:      []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ves ValidationErrors
			require.ErrorAs(t, err, &ves)
			var got []string
			for _, ve := range ves {
				got = append(got, ve.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestRegisterAppRequestNormalize(t *testing.T) {
	req := RegisterAppRequest{Name: "  portal-cliente ", AppID: " cc983fd5-d025-40cf-8b05-14bfc3cc299c\n"}
	req.Normalize()

	assert.Equal(t, "portal-cliente", req.Name)
	assert.Equal(t, "cc983fd5-d025-40cf-8b05-14bfc3cc299c", req.AppID)
}

func TestSaveConfigRequestNormalize(t *testing.T) {
	req := SaveConfigRequest{BaseURL: " https://privatecloud.mendixcloud.com/ ", Token: " abc "}
	req.Normalize()

	assert.Equal(t, "https://privatecloud.mendixcloud.com", req.BaseURL)
	assert.Equal(t, "abc", req.Token)
	assert.NoError(t, Validate(&req))
}

func TestValidationErrorsMessage(t *testing.T) {
	single := ValidationErrors{{Field: "name", Message: "is required"}}
	assert.Equal(t, "name: is required", single.Error())

	multi := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "appId", Message: "is required"},
	}
	assert.Equal(t, "multiple validation errors: name: is required; appId: is required", multi.Error())
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", ""},
		{"short", "********"},
		{"12345678", "********"},
		{"MxToken-abcdef123456", "********3456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MaskToken(tt.token))
	}

	cfg := APIConfig{BaseURL: "https://example.com", Token: "supersecrettoken"}
	masked := cfg.Masked()
	assert.Equal(t, "https://example.com", masked.BaseURL)
	assert.NotContains(t, masked.Token, "supersecret")
	assert.Equal(t, "supersecrettoken", cfg.Token)
}
