package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/shinkrobot/internal/domain"
)

func TestDiscordService_SendError(t *testing.T) {
	var got discordWebhook
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewDiscordService(zerolog.Nop(), srv.URL)
	err := s.SendError(context.Background(), domain.ErrorReport{
		RequestID: "abc",
		ChatID:    -100,
		SenderID:  7,
		Command:   "/anime",
		Err:       errors.New("boom"),
	})
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	embed := got.Embeds[0]
	assert.Equal(t, "```boom```", embed.Description)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "/anime", embed.Fields[0].Value)
	assert.Equal(t, "-100", embed.Fields[1].Value)
	assert.Equal(t, "7", embed.Fields[2].Value)
	assert.Equal(t, "abc", embed.Fields[3].Value)
}

func TestDiscordService_LongError(t *testing.T) {
	var got discordWebhook
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	s := NewDiscordService(zerolog.Nop(), srv.URL)
	err := s.SendError(context.Background(), domain.ErrorReport{Err: errors.New(strings.Repeat("x", 5000))})
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	assert.LessOrEqual(t, len(got.Embeds[0].Description), maxDescription)
	assert.Equal(t, "-", got.Embeds[0].Fields[0].Value)
}

func TestDiscordService_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewDiscordService(zerolog.Nop(), srv.URL)
	err := s.SendError(context.Background(), domain.ErrorReport{Err: errors.New("boom")})
	assert.Error(t, err)
}

func TestService_NoWebhook(t *testing.T) {
	s := NewService(zerolog.Nop(), "")
	assert.NoError(t, s.SendError(context.Background(), domain.ErrorReport{Err: errors.New("boom")}))
}
