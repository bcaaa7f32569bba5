package response

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"user_id": 1})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"OK","data":{"user_id":1}}`, string(raw))
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}

	v := validator.New()

	err := v.Struct(payload{Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Password is too short")

	err = v.Struct(payload{})
	require.Error(t, err)

	resp = ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "field Email is a required field")
	assert.Contains(t, resp.Error, "field Password is a required field")
}
