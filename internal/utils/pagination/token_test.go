package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	original := Cursor{
		Date:      time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, time.March, 5, 10, 11, 12, 123456789, time.UTC),
		ID:        "b5f4c2d0-1111-2222-3333-444455556666",
	}

	token := EncodeToken(original)
	decoded, err := DecodeToken(token)
	require.NoError(t, err)

	assert.True(t, original.Date.Equal(decoded.Date))
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := map[string]string{
		"not base64":   "%%%",
		"missing id":   base64.URLEncoding.EncodeToString([]byte("2025-01-01T00:00:00Z|2025-01-01T00:00:00Z")),
		"bad date":     base64.URLEncoding.EncodeToString([]byte("yesterday|2025-01-01T00:00:00Z|x")),
		"bad created":  base64.URLEncoding.EncodeToString([]byte("2025-01-01T00:00:00Z|later|x")),
		"empty string": "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeToken(token)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, 5, NormalizeLimit(5))
	assert.Equal(t, MaxLimit, NormalizeLimit(1000))
}
