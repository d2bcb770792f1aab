package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
)

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("+55 (11) 98765-4321")
	require.NoError(t, err)
	assert.Equal(t, "5511987654321", got)

	got, err = NormalizePhone("11987654321")
	require.NoError(t, err)
	assert.Equal(t, "11987654321", got)
}

func TestNormalizePhoneInvalid(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"1234567",            // 7 dígitos
		"1234567890123456",   // 16 dígitos
		"+++ --- ()",
	}

	for _, raw := range cases {
		_, err := NormalizePhone(raw)
		require.Error(t, err, "raw %q", raw)
		assert.Equal(t, httperr.CodeInvalidPhone, businessCode(err))
	}
}

func TestHashPhone(t *testing.T) {
	h := HashPhone("5511987654321")

	assert.Len(t, h, 64)
	assert.Equal(t, h, HashPhone("5511987654321"))
	assert.NotEqual(t, h, HashPhone("5511987654322"))
}
