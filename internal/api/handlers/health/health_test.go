package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clothing-combiner/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.App.Version = "1.2.3"

	r := gin.New()
	r.GET("/", Root)
	r.GET("/health", HealthCheck(cfg))
	r.GET("/ready", ReadinessCheck)
	r.GET("/live", LivenessCheck)

	tests := []struct {
		path   string
		key    string
		expect string
	}{
		{"/", "status", "OK"},
		{"/", "message", "Clothing combiner service is running"},
		{"/health", "status", "ok"},
		{"/health", "version", "1.2.3"},
		{"/ready", "status", "ready"},
		{"/live", "status", "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.path+"_"+tt.key, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expect, body[tt.key])
		})
	}
}
