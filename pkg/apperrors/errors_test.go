package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, NewNotFoundError("casting", "Casting call not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Casting call not found", body["error"])
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.True(t, c.IsAborted())
}

func TestHandleError_UnknownBecomesInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","code":"INTERNAL_ERROR"}`, w.Body.String())
}

func TestHandleStatusError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleStatusError(c, NewForbiddenError("Cannot delete system roles"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"status":false,"error":"Cannot delete system roles"}`, w.Body.String())
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrNoFieldsToUpdate.WithDetails(map[string]int{"x": 1})

	assert.Nil(t, ErrNoFieldsToUpdate.Details)
	assert.NotNil(t, withDetails.Details)
}

func TestWrapUnwrap(t *testing.T) {
	root := errors.New("boom")
	err := InternalError(root)

	assert.True(t, Is(err, root))
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
}
