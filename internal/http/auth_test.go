package http

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"gmscreen/internal/domain"
)

func newBareHandler(secret string) *Handler {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewHandler(nil, nil, nil, nil, nil, "", "", secret, time.Hour, logger)
}

func TestTokenRoundTrip(t *testing.T) {
	h := newBareHandler("test-secret")

	token, expiresAt, err := h.issueToken(&domain.User{ID: "U123"})
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	subject, err := h.parseToken(token)
	require.NoError(t, err)
	require.Equal(t, "U123", subject)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := newBareHandler("secret-one").issueToken(&domain.User{ID: "U123"})
	require.NoError(t, err)

	_, err = newBareHandler("secret-two").parseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := newBareHandler("test-secret").parseToken("not-a-token")
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	h := newBareHandler("test-secret")
	h.tokenTTL = -time.Minute

	token, _, err := h.issueToken(&domain.User{ID: "U123"})
	require.NoError(t, err)

	_, err = h.parseToken(token)
	require.Error(t, err)
}
