package clients

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestHTTPClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("X-Test", "post")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	client := NewHTTPClient()

	status, body, headers, err := client.Post(server.URL, nil, []byte(`{"title":"Mystery"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"title":"Mystery"}`, string(body))
	assert.Equal(t, "post", headers.Get("X-Test"))
}

func TestHTTPClient_PostKeepsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	headers := http.Header{}
	headers.Set("Content-Type", "text/plain")
	status, _, _, err := NewHTTPClient().Post(server.URL, headers, []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestHTTPClient_PostUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, _, _, err := NewHTTPClient().Post(url, nil, []byte("{}"))
	assert.Error(t, err)
}

func TestHTTPClient_SetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().Post("http://generator/api/generate", gomock.Any(), []byte("{}")).Return(http.StatusOK, []byte("{}"), http.Header{}, nil)

	client := NewHTTPClient()
	client.SetClient(mock)

	status, body, _, err := client.Post("http://generator/api/generate", nil, []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", string(body))
}
