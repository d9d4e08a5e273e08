package clothing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clothing-combiner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCombiner struct {
	resp *common.CombineResponse
	err  error
	got  common.CombineRequest
}

func (f *fakeCombiner) Combine(_ context.Context, req common.CombineRequest) (*common.CombineResponse, error) {
	f.got = req
	return f.resp, f.err
}

func newTestEngine(combiner Combiner) *gin.Engine {
	r := gin.New()
	r.POST("/combine-clothing", NewHandler(combiner).HandleCombine)
	r.GET("/test-combine", HandleDescribe("horizontal"))
	return r
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/combine-clothing", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeFailure(t *testing.T, w *httptest.ResponseRecorder) common.FailureResponse {
	t.Helper()
	var resp common.FailureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp
}

func TestHandleCombineSuccess(t *testing.T) {
	fake := &fakeCombiner{resp: &common.CombineResponse{
		Success:             true,
		CombinedImageBase64: "AAAA",
		CombinedImageURL:    "data:image/jpeg;base64,AAAA",
		CanvasSize:          "600x540",
		Layout:              "horizontal",
		UpperPosition:       "20,20",
		LowerPosition:       "300,20",
		Arrangement:         "left: upper clothing, right: lower clothing",
	}}
	r := newTestEngine(fake)

	w := postJSON(r, `{"upper_url":"https://a.test/u.png","lower_url":"https://a.test/l.png","preset":"labeled"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp common.CombineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "600x540", resp.CanvasSize)
	assert.Equal(t, "https://a.test/u.png", fake.got.UpperURL)
	assert.Equal(t, "https://a.test/l.png", fake.got.LowerURL)
	assert.Equal(t, "labeled", fake.got.Preset)
}

func TestHandleCombineErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid json",
			body:       `{"upper_url":`,
			wantStatus: http.StatusBadRequest,
			wantError:  common.MsgMissingURLs,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantError:  common.MsgMissingURLs,
		},
		{
			name:       "service custom error",
			body:       `{"upper_url":"u","lower_url":"l"}`,
			err:        common.NewDownloadError(errors.New("status code 404 for url: u")),
			wantStatus: http.StatusBadRequest,
			wantError:  "Failed to download image: status code 404 for url: u",
		},
		{
			name:       "plain error becomes processing error",
			body:       `{"upper_url":"u","lower_url":"l"}`,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Processing error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(&fakeCombiner{err: tt.err})
			w := postJSON(r, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeFailure(t, w)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestHandleCombineBodyTooLarge(t *testing.T) {
	r := gin.New()
	r.POST("/combine-clothing", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 8)
		c.Next()
	}, NewHandler(&fakeCombiner{}).HandleCombine)

	w := postJSON(r, `{"upper_url":"https://a.test/u.png","lower_url":"https://a.test/l.png"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request body too large", decodeFailure(t, w).Error)
}

func TestHandleDescribe(t *testing.T) {
	r := newTestEngine(&fakeCombiner{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-combine", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status        string       `json:"status"`
		Endpoint      string       `json:"endpoint"`
		DefaultPreset string       `json:"default_preset"`
		Presets       []presetInfo `json:"presets"`
		MinOutput     string       `json:"min_output"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "/combine-clothing", body.Endpoint)
	assert.Equal(t, "horizontal", body.DefaultPreset)
	assert.Equal(t, "300x300", body.MinOutput)

	names := make([]string, 0, len(body.Presets))
	for _, p := range body.Presets {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"bordered", "compact", "horizontal", "labeled", "original"}, names)
}
