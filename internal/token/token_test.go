package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mwalcott/motorlot/internal/models"
)

var testSecret = []byte("test-secret-test-secret-test-secret")

func testAccount() models.Account {
	return models.Account{
		ID:           42,
		FirstName:    "Jo",
		LastName:     "Santos",
		Email:        "jo@example.com",
		PasswordHash: "$2a$10$should-never-appear",
		Role:         models.RoleEmployee,
	}
}

func TestSignAndVerify(t *testing.T) {
	now := time.Now()
	raw, err := Sign(testAccount(), testSecret, now)
	require.NoError(t, err)

	data, err := Verify(raw, testSecret, now)
	require.NoError(t, err)
	require.Equal(t, uint(42), data.ID)
	require.Equal(t, "Jo", data.FirstName)
	require.Equal(t, "Santos", data.LastName)
	require.Equal(t, models.RoleEmployee, data.Role)
	require.True(t, data.IsStaff())
}

func TestTokenNeverCarriesPassword(t *testing.T) {
	raw, err := Sign(testAccount(), testSecret, time.Now())
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	require.NotContains(t, claims, "password")
	require.NotContains(t, claims, "password_hash")
	require.NotContains(t, string(payload), "should-never-appear")
}

func TestTokenExpiry(t *testing.T) {
	issued := time.Now()
	raw, err := Sign(testAccount(), testSecret, issued)
	require.NoError(t, err)

	_, err = Verify(raw, testSecret, issued.Add(3599*time.Second))
	require.NoError(t, err, "token must still be valid one second before expiry")

	_, err = Verify(raw, testSecret, issued.Add(3601*time.Second))
	require.Error(t, err, "token must be rejected one second after expiry")
}

func TestTamperedSignatureRejected(t *testing.T) {
	now := time.Now()
	raw, err := Sign(testAccount(), testSecret, now)
	require.NoError(t, err)

	lastDot := strings.LastIndex(raw, ".")
	require.Greater(t, lastDot, 0)

	// Swap every signature character in turn for a different one; any
	// single-byte alteration must fail verification.
	for i := lastDot + 1; i < len(raw)-1; i++ {
		altered := []byte(raw)
		if altered[i] == 'A' {
			altered[i] = 'B'
		} else {
			altered[i] = 'A'
		}
		_, err := Verify(string(altered), testSecret, now)
		require.Error(t, err, "altered signature byte %d was accepted", i)
	}
}

func TestTamperedPayloadRejected(t *testing.T) {
	now := time.Now()
	raw, err := Sign(testAccount(), testSecret, now)
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	// Promote the role claim without re-signing.
	forged := strings.Replace(string(payload), models.RoleEmployee, models.RoleAdmin, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = Verify(strings.Join(parts, "."), testSecret, now)
	require.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	now := time.Now()
	raw, err := Sign(testAccount(), testSecret, now)
	require.NoError(t, err)

	_, err = Verify(raw, []byte("another-secret"), now)
	require.Error(t, err)
}
