package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	iauth "github.com/creatorlane/creatorlane/internal/auth"
)

func newTestJWT(t *testing.T) *iauth.JWTService {
	t.Helper()
	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "handlers-test-secret", Issuer: "creatorlane"})
	require.NoError(t, err)
	return jwt
}

func jsonBody(t *testing.T, payload any) io.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}
