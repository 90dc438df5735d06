package provider

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := &Error{Provider: "ElevenLabs", StatusCode: 401, Body: `{"detail":"invalid api key"}`}
	assert.Equal(t, `ElevenLabs API failed: 401 - {"detail":"invalid api key"}`, err.Error())
}

func TestAsError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("synthesize segment 2: %w", &Error{Provider: "ElevenLabs", StatusCode: 500})

	pe, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 500, pe.StatusCode)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			w.Write([]byte("fine"))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer srv.Close()

	client := HTTPClient("Groq")

	resp, err := client.Get(srv.URL + "/ok")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "fine", string(body))

	_, err = client.Get(srv.URL + "/down")
	pe, ok := AsError(err)
	require.True(t, ok, "expected provider error, got %v", err)
	assert.Equal(t, "Groq API failed: 502 - <html>502 Bad Gateway</html>", pe.Error())
}
