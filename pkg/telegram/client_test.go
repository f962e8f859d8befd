package telegram

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/bottest-token/sendMessage"))

		raw, _ := io.ReadAll(r.Body)

		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err == nil {
			got = url.Values{}
			for k, v := range payload {
				if s, ok := v.(string); ok {
					got.Set(k, s)
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-token", srv.URL)
	require.NoError(t, err)

	err = c.Send("42", "Watering reminder", "Your plant Fern needs watering now!")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "42", got.Get("chat_id"))
	assert.Equal(t, "Watering reminder\n\nYour plant Fern needs watering now!", got.Get("text"))
}

func TestClient_Send_InvalidChatID(t *testing.T) {
	c, err := NewClient("test-token", "http://127.0.0.1:1")
	require.NoError(t, err)

	err = c.Send("@somebody", "s", "b")
	assert.ErrorContains(t, err, "invalid telegram chat id")
}

func TestNewClient_EmptyToken(t *testing.T) {
	_, err := NewClient(" ", "")
	assert.Error(t, err)
}
