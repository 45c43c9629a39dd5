package webapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ivlev/alive2json/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliveDoc = `{"movieClips": [{"name": "fade", "style": {"opacity": 0},
  "animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": 1, "duration": 300}]}]}}]}`

const lottieDoc = `{"fr": 30, "assets": [{"id": "a1"}],
  "layers": [{"refId": "a1", "nm": "L", "ks": {"o": {"k": [{"t": 0, "s": [100]}, {"t": 30, "s": [50]}]}}}]}`

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestConvert(t *testing.T) {
	e := NewServer(store.NewInMemoryConversionStor(), false)

	tests := []struct {
		name        string
		target      string
		body        string
		status      int
		contentType string
		contains    string
	}{
		{"module", "/api/convert", aliveDoc, http.StatusOK, MIMEApplicationJavaScript, `module.exports={"fade":`},
		{"json", "/api/convert?emit=json", aliveDoc, http.StatusOK, echo.MIMEApplicationJSON, `{"fade":[`},
		{"native lottie", "/api/convert?format=lottie&emit=native", lottieDoc, http.StatusOK, echo.MIMEApplicationJSON, `"remark":"L"`},
		{"lottie module", "/api/convert?format=lottie", lottieDoc, http.StatusOK, MIMEApplicationJavaScript, `"a1":[{"property":"alpha"`},
		{"unknown format falls back", "/api/convert?format=svga", aliveDoc, http.StatusOK, MIMEApplicationJavaScript, `"fade"`},
		{"parse error", "/api/convert", `{"movieClips": [`, http.StatusUnprocessableEntity, echo.MIMEApplicationJSON, `"kind":"parse"`},
		{"structure error", "/api/convert?format=lottie", `{"layers": []}`, http.StatusUnprocessableEntity, echo.MIMEApplicationJSON, `"kind":"structure"`},
		{"bad emit", "/api/convert?emit=yaml", aliveDoc, http.StatusBadRequest, echo.MIMEApplicationJSON, `unknown emit mode`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), tt.contentType))
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestConvertCachesRepeats(t *testing.T) {
	stor := store.NewInMemoryConversionStor()
	e := NewServer(stor, false)

	first := doRequest(e, http.MethodPost, "/api/convert", aliveDoc)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))

	second := doRequest(e, http.MethodPost, "/api/convert", aliveDoc)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	rec := doRequest(e, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status string `json:"status"`
		Cached int64  `json:"cached"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, int64(1), health.Cached)
}

func TestConvertWithoutCache(t *testing.T) {
	c := NewConvertController(nil, false)
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(aliveDoc))
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)

	require.NoError(t, c.Convert(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "miss", rec.Header().Get("X-Cache"))
}
