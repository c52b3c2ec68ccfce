// Package pix builds static PIX "copia e cola" codes (EMV-QR BR Code).
package pix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	idPayloadFormat      = "00"
	idInitiationMethod   = "01"
	idMerchantAccount    = "26"
	idMerchantCategory   = "52"
	idCurrency           = "53"
	idAmount             = "54"
	idCountry            = "58"
	idMerchantName       = "59"
	idMerchantCity       = "60"
	idAdditionalData     = "62"
	idCRC                = "63"
	idGUI                = "00"
	idKey                = "01"
	idReferenceLabel     = "05"
	gui                  = "br.gov.bcb.pix"
	payloadFormatVersion = "01"
	staticInitiation     = "12"
	categoryCode         = "0000"
	currencyBRL          = "986"
	countryBR            = "BR"

	// CRCHeader is the id+length prefix of the trailing checksum field.
	CRCHeader = idCRC + "04"

	MaxTxIDLength         = 25
	MaxMerchantNameLength = 25
	MaxMerchantCityLength = 15
	maxValueLength        = 99

	// Reference label used when no transaction id is given.
	anyTxID = "***"
)

var (
	ErrMissingKey      = httperr.ErrBusiness("pix_key_not_configured")
	ErrMissingMerchant = httperr.ErrBusiness("pix_merchant_not_configured")
	ErrFieldTooLong    = httperr.ErrBusiness("pix_field_too_long")
	ErrInvalidAmount   = httperr.ErrBusiness("invalid_amount")
)

type Payload struct {
	Key          string
	Amount       float64
	MerchantName string
	MerchantCity string
	TxID         string
}

// Encode renders p as a BR Code string terminated by its CRC.
// Identical payloads always yield identical codes.
func Encode(p Payload) (string, error) {
	key := strings.TrimSpace(p.Key)
	if key == "" {
		return "", ErrMissingKey
	}

	name := ASCII(p.MerchantName, MaxMerchantNameLength)
	city := ASCII(p.MerchantCity, MaxMerchantCityLength)
	if name == "" || city == "" {
		return "", ErrMissingMerchant
	}

	txid := truncate(p.TxID, MaxTxIDLength)
	if txid == "" {
		txid = anyTxID
	}

	account, err := tlv(idGUI, gui)
	if err != nil {
		return "", err
	}
	keyField, err := tlv(idKey, key)
	if err != nil {
		return "", err
	}
	reference, err := tlv(idReferenceLabel, txid)
	if err != nil {
		return "", err
	}

	fields := [][2]string{
		{idPayloadFormat, payloadFormatVersion},
		{idInitiationMethod, staticInitiation},
		{idMerchantAccount, account + keyField},
		{idMerchantCategory, categoryCode},
		{idCurrency, currencyBRL},
		{idAmount, FormatAmount(p.Amount)},
		{idCountry, countryBR},
		{idMerchantName, name},
		{idMerchantCity, city},
		{idAdditionalData, reference},
	}

	var b strings.Builder
	for _, f := range fields {
		seg, err := tlv(f[0], f[1])
		if err != nil {
			return "", err
		}
		b.WriteString(seg)
	}
	b.WriteString(CRCHeader)

	body := b.String()
	return body + Checksum(body), nil
}

// FormatAmount renders a value with exactly two decimals and an ASCII point.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// ValidateAmount is the boundary check callers run before Encode.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func tlv(id, value string) (string, error) {
	if len(value) > maxValueLength {
		return "", fmt.Errorf("field %s: %w", id, ErrFieldTooLong)
	}
	return fmt.Sprintf("%s%02d%s", id, len(value), value), nil
}

// truncate caps s at max bytes without splitting a rune.
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
