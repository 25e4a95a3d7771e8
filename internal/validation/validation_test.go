package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTypeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		value string
		want  bool
	}{
		{"phone ok", validation.IsValidPhone, "9876543210", true},
		{"phone short", validation.IsValidPhone, "98765", false},
		{"phone letters", validation.IsValidPhone, "98765abcde", false},
		{"email ok", validation.IsValidEmail, "john@example.com", true},
		{"email no domain dot", validation.IsValidEmail, "john@example", false},
		{"email with space", validation.IsValidEmail, "jo hn@example.com", false},
		{"pan ok", validation.IsValidPAN, "ABCDE1234F", true},
		{"pan lowercase", validation.IsValidPAN, "abcde1234f", true},
		{"pan short", validation.IsValidPAN, "ABCD1234F", false},
		{"aadhar ok", validation.IsValidAadhar, "123456789012", true},
		{"aadhar short", validation.IsValidAadhar, "12345678901", false},
		{"rera ok", validation.IsValidRERA, "P52100012345", true},
		{"rera missing prefix", validation.IsValidRERA, "52100012345", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.value))
		})
	}
}

type clientInput struct {
	Name   string `json:"clientName" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
	Mobile string `json:"mobileNumber" binding:"required,phone"`
	PAN    string `json:"panNo" binding:"omitempty,pan"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := validation.Struct(clientInput{Name: "Asha", Mobile: "9876543210", PAN: "ABCDE1234F"})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := validation.Struct(clientInput{Name: "Asha", Mobile: "12", PAN: "bad"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		assert.Contains(t, err.Error(), "mobileNumber must be a 10 digit mobile number")
		assert.Contains(t, err.Error(), "panNo must be a valid PAN")
	})

	t.Run("missing required", func(t *testing.T) {
		err := validation.Struct(clientInput{Mobile: "9876543210"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "clientName is required")
	})
}

func TestField(t *testing.T) {
	assert.NoError(t, validation.Field("mahareraNo", "P52100012345", "required,rera"))

	err := validation.Field("mahareraNo", "X1", "required,rera")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "MahaRERA")
}

func TestRegisterWithGin_SharesDefaultValidator(t *testing.T) {
	validation.RegisterWithGin()
	assert.Same(t, validation.Default(), binding.Validator.Engine())

	gin.SetMode(gin.TestMode)
	bind := func(body string, target any) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		return c.ShouldBindJSON(target)
	}

	var one clientInput
	assert.NoError(t, bind(`{"clientName":"Asha","mobileNumber":"9876543210","panNo":"abcde1234f"}`, &one))

	err := bind(`{"clientName":"Asha","mobileNumber":"12"}`, &one)
	require.Error(t, err)
	assert.Contains(t, validation.Translate(err).Error(), "mobileNumber must be a 10 digit mobile number")

	var many []clientInput
	err = bind(`[{"clientName":"Asha","mobileNumber":"9876543210"},{"mobileNumber":"9876543210"}]`, &many)
	require.Error(t, err)
	assert.Contains(t, validation.Translate(err).Error(), "clientName is required")
}
