package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	t.Parallel()

	var ctxID string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		ctxID = c.GetString(ContextRequestID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	headerID := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, headerID, "a request id should be assigned")
	assert.Equal(t, headerID, ctxID, "header and context ids should match")

	_, err := uuid.Parse(headerID)
	assert.NoError(t, err, "generated id should be a valid UUID")
}

func TestRequestID_KeepsClientID(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-supplied-id")
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get(HeaderRequestID),
		"a client-supplied id is kept")
}
