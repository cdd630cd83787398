package render

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.HandlerFunc) (*http.Response, string) {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/test")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	return resp, string(body)
}

func TestRender_JSON(t *testing.T) {
	resp, body := get(t, func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, map[string]any{"connected": true, "count": 3})
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"connected":true,"count":3}`, body)
}

func TestRender_JSONWithStatus(t *testing.T) {
	resp, body := get(t, func(w http.ResponseWriter, _ *http.Request) {
		JSONWithStatus(w, map[string]any{"success": false, "error": "RefreshFailed"}, http.StatusBadRequest)
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"RefreshFailed"}`, body)
}

func TestRender_ServiceError(t *testing.T) {
	resp, body := get(t, func(w http.ResponseWriter, _ *http.Request) {
		ServiceError(w, "region not found", http.StatusNotFound)
	})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"service_error","message":"region not found"}`, body)
}

func TestRender_BindAndValidate(t *testing.T) {
	type request struct {
		Slug string `json:"slug" validate:"required,slug"`
		Name string `json:"name" validate:"required"`
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid",
			body:       `{"slug":"putzmeister-m42","name":"Putzmeister M42"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid json",
			body:       `{"slug": 42}`,
			wantStatus: http.StatusBadRequest,
			wantError:  DecodingErrorType,
		},
		{
			name:       "missing name",
			body:       `{"slug":"putzmeister-m42"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  ValidationErrorType,
		},
		{
			name:       "bad slug",
			body:       `{"slug":"Putzmeister M42","name":"Putzmeister M42"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  ValidationErrorType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				value, err := BindAndValidate[request](w, r)
				if err != nil {
					return
				}
				JSON(w, value)
			}))
			defer ts.Close()

			resp, err := http.Post(ts.URL, "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer resp.Body.Close() //nolint:errcheck

			require.Equalf(t, tt.wantStatus, resp.StatusCode, "body: %s", string(body))
			if tt.wantError != "" {
				assert.Contains(t, string(body), tt.wantError)
			}
		})
	}
}
