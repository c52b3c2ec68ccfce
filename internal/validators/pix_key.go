package validators

import (
	"strings"

	"github.com/google/uuid"
)

type PixKeyKind string

const (
	PixKeyCPF    PixKeyKind = "cpf"
	PixKeyCNPJ   PixKeyKind = "cnpj"
	PixKeyPhone  PixKeyKind = "phone"
	PixKeyEmail  PixKeyKind = "email"
	PixKeyRandom PixKeyKind = "evp"
)

// PixKeyKindOf classifies a DICT key as typed by the user. Keys must already
// be in their canonical form: digits only for CPF/CNPJ, +55 plus DDD for phones.
func PixKeyKindOf(key string) (PixKeyKind, bool) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 77 {
		return "", false
	}

	switch {
	case strings.HasPrefix(key, "+"):
		digits := key[1:]
		if strings.HasPrefix(digits, "55") && onlyDigits(digits) && (len(digits) == 12 || len(digits) == 13) {
			return PixKeyPhone, true
		}
		return "", false

	case strings.Contains(key, "@"):
		if IsEmailFormatValid(key) {
			return PixKeyEmail, true
		}
		return "", false

	case onlyDigits(key) && len(key) == 11:
		return PixKeyCPF, true

	case onlyDigits(key) && len(key) == 14:
		return PixKeyCNPJ, true
	}

	if _, err := uuid.Parse(key); err == nil && len(key) == 36 {
		return PixKeyRandom, true
	}
	return "", false
}

func IsPixKeyValid(key string) bool {
	_, ok := PixKeyKindOf(key)
	return ok
}

func onlyDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
