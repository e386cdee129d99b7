package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/onlinestore/apperror"
)

type itemRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=1000"`
	Note      string `json:"note" validate:"max=5"`
}

func decodeBody(t *testing.T, body string) (itemRequest, error) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	var req itemRequest
	err := Decode(w, r, &req)
	return req, err
}

func TestDecode(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req, err := decodeBody(t, `{"product_id": 3, "quantity": 2, "unknown": true}`)
		require.NoError(t, err)
		assert.Equal(t, int64(3), req.ProductID)
		assert.Equal(t, 2, req.Quantity)
	})

	t.Run("FieldErrorsUseJSONNames", func(t *testing.T) {
		_, err := decodeBody(t, `{"quantity": 0, "note": "too long"}`)
		require.Error(t, err)

		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ValidationError, appErr.Type)
		assert.Equal(t, []string{"this field is required"}, appErr.Fields["product_id"])
		assert.Equal(t, []string{"ensure this value is greater than or equal to 1"}, appErr.Fields["quantity"])
		assert.Equal(t, []string{"ensure this field has no more than 5 characters"}, appErr.Fields["note"])
	})

	t.Run("WrongType", func(t *testing.T) {
		_, err := decodeBody(t, `{"product_id": "abc", "quantity": 1}`)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "product_id")
	})

	t.Run("EmptyBody", func(t *testing.T) {
		_, err := decodeBody(t, ``)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := decodeBody(t, `{"product_id": `)
		assert.False(t, apperror.IsValidationError(err))
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	})
}

func TestError(t *testing.T) {
	t.Run("AppError", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		Error(w, r, apperror.NewFieldError("product_id", "object does not exist"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp apperror.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, []string{"object does not exist"}, resp.Fields["product_id"])
	})

	t.Run("PlainErrorIsInternal", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		Error(w, r, errors.New("pool exhausted"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pool exhausted")
	})
}

func TestJSONNil(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusAccepted, nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Empty(t, w.Body.String())
}
