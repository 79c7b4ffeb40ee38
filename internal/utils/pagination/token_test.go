package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaminwale/crm_backend/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	original := time.Date(2025, 6, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeDateBasedToken(original)
	decoded, err := pagination.DecodeDateBasedToken(token)

	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}

func TestDecodeRejectsBadBase64(t *testing.T) {
	_, err := pagination.DecodeDateBasedToken("!!! not base64 !!!")
	assert.Error(t, err)
}

func TestDecodeRejectsNonDatePayload(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("not a timestamp"))
	_, err := pagination.DecodeDateBasedToken(token)
	assert.Error(t, err)
}
