//go:build unit

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(register func(*gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := middleware.NewLogger(config.LogConfig{Level: "error"})

	engine := gin.New()
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
	register(engine)
	return engine
}

func perform(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerRendersEnvelope(t *testing.T) {
	engine := newEngine(func(e *gin.Engine) {
		e.GET("/missing", func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusNotFound, errs.New("row missing"), "Not found", nil)
		})
	})

	w := perform(engine, "/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not found", resp.Error.Message)
	assert.NotEmpty(t, resp.RequestID)
}

func TestErrorHandlerLeavesWrittenResponsesAlone(t *testing.T) {
	engine := newEngine(func(e *gin.Engine) {
		e.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	})

	w := perform(engine, "/ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestErrorHandlerFallsBackOnUnrecordedFailure(t *testing.T) {
	engine := newEngine(func(e *gin.Engine) {
		e.GET("/silent", func(c *gin.Context) {
			c.Abort()
		})
	})

	w := perform(engine, "/silent")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error.Message)
}
