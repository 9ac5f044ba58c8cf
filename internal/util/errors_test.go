package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{errors.New("boom"), KindUnknown},
		{NewValidationError("title", "is required"), KindValidation},
		{ErrNotOwner, KindAuthorization},
		{ErrNotEnrolled, KindAuthorization},
		{ErrTestNotFound, KindNotFound},
		{fmt.Errorf("load: %w", ErrAttemptNotFound), KindNotFound},
		{ErrAttemptLimitExceeded, KindConflict},
		{ErrAttemptExpired, KindConflict},
		{ErrConcurrentAttempt, KindConflict},
		{fmt.Errorf("%w: timeout", ErrStorage), KindTransient},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, KindOf(tc.err), "%v", tc.err)
	}
}

func TestAttemptExpiredIsInvalidState(t *testing.T) {
	assert.ErrorIs(t, ErrAttemptExpired, ErrInvalidState)
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("title", "is required")
	verr.Add("questions", "at least one question is required")
	err := verr.OrNil()
	require.Error(t, err)
	assert.Equal(t, "validation failed: title: is required; questions: at least one question is required", err.Error())
}

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", NewValidationError("points", "must be at least 1"), http.StatusBadRequest},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", ErrPermissionDenied, http.StatusForbidden},
		{"not found", ErrQuestionNotFound, http.StatusNotFound},
		{"conflict", ErrAttemptInProgress, http.StatusConflict},
		{"transient", ErrStorage, http.StatusServiceUnavailable},
		{"unknown", errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleServiceError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
		})
	}
}

func TestHandleServiceError_ValidationPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	verr := &ValidationError{}
	verr.Add("title", "is required")
	verr.Add("settings.maxAttempts", "must be >= 1")
	HandleServiceError(c, verr)

	var resp struct {
		Code int             `json:"code"`
		Data ValidationError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Violations, 2)
	assert.Equal(t, "settings.maxAttempts", resp.Data.Violations[1].Field)
}
