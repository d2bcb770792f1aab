package booking

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
)

const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

// NormalizePhone reduz o telefone a dígitos e valida o comprimento.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", httperr.ErrBusiness(httperr.CodeInvalidPhone)
	}

	return digits, nil
}

// HashPhone gera o hash unidirecional usado nas consultas do portal.
func HashPhone(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
