package pix

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var sample = Payload{
	Key:          "user@bank.com",
	Amount:       49.90,
	MerchantName: "Styllus",
	MerchantCity: "Sao Paulo",
	TxID:         "SUB12345678",
}

func TestCRC16KnownVectors(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), CRC16([]byte("123456789")))
	assert.Equal(t, uint16(0xFFFF), CRC16(nil))

	// Example code from the BR Code manual.
	body := "00020126580014br.gov.bcb.pix0136123e4567-e12b-12d1-a456-4266554400005204000053039865802BR5913Fulano de Tal6008BRASILIA62070503***6304"
	assert.Equal(t, "1D3D", Checksum(body))
	assert.True(t, Verify(body+"1D3D"))
}

func TestEncodeLayout(t *testing.T) {
	code, err := Encode(sample)
	require.NoError(t, err)

	want := "000201" +
		"010212" +
		"26350014br.gov.bcb.pix0113user@bank.com" +
		"52040000" +
		"5303986" +
		"540549.90" +
		"5802BR" +
		"5907Styllus" +
		"6009Sao Paulo" +
		"62150511SUB12345678" +
		"6304"

	assert.Equal(t, want, code[:len(code)-4])
	assert.Len(t, code, len(want)+4)
}

func TestEncodeIsDeterministic(t *testing.T) {
	a, err := Encode(sample)
	require.NoError(t, err)
	b, err := Encode(sample)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEncodeChecksumRoundTrip(t *testing.T) {
	code, err := Encode(sample)
	require.NoError(t, err)

	body, crc := code[:len(code)-4], code[len(code)-4:]
	assert.True(t, strings.HasSuffix(body, CRCHeader))
	assert.Equal(t, Checksum(body), crc)
	assert.Equal(t, strings.ToUpper(crc), crc)
	assert.True(t, Verify(code))

	tampered := strings.Replace(code, "49.90", "99.90", 1)
	assert.False(t, Verify(tampered))
}

// Field 26 declares N+22 for an N-byte key: the GUI sub-field "0014br.gov.bcb.pix"
// (18) plus the key sub-field header "01NN" (4). The 14 bytes of the GUI value
// alone would give N+14, which is not a well-formed TLV and fails the CRC check.
func TestMerchantAccountLengths(t *testing.T) {
	for _, key := range []string{"a", "user@bank.com", "+5511999990000", "123e4567-e12b-12d1-a456-426655440000"} {
		p := sample
		p.Key = key

		code, err := Encode(p)
		require.NoError(t, err)

		fields, err := Parse(code)
		require.NoError(t, err)

		account := field(t, fields, "26")
		inner, err := Parse(account)
		require.NoError(t, err)

		assert.Equal(t, gui, field(t, inner, "00"))
		assert.Equal(t, key, field(t, inner, "01"))
		assert.Len(t, field(t, inner, "01"), len(key))
		assert.Len(t, account, len(key)+22, "GUI sub-field (18) plus key header (4)")
	}
}

func TestTxIDTruncatedAndDefaulted(t *testing.T) {
	p := sample
	p.TxID = "APT0123456789ABCDEFGHIJKLMNOP"

	code, err := Encode(p)
	require.NoError(t, err)
	fields, err := Parse(code)
	require.NoError(t, err)
	ref, err := Parse(field(t, fields, "62"))
	require.NoError(t, err)
	assert.Equal(t, "APT0123456789ABCDEFGHIJK", field(t, ref, "05")[:24])
	assert.Len(t, field(t, ref, "05"), MaxTxIDLength)

	p.TxID = ""
	code, err = Encode(p)
	require.NoError(t, err)
	assert.Contains(t, code, "62070503***6304")
}

func TestAmountFormatting(t *testing.T) {
	assert.Equal(t, "49.90", FormatAmount(49.9))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "1250.00", FormatAmount(1250))
	assert.Equal(t, "10.01", FormatAmount(10.005000001))

	assert.NoError(t, ValidateAmount(0))
	assert.ErrorIs(t, ValidateAmount(-1), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(math.NaN()), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(math.Inf(1)), ErrInvalidAmount)
}

func TestEncodeMissingKey(t *testing.T) {
	p := sample
	p.Key = "   "

	code, err := Encode(p)
	assert.Empty(t, code)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.True(t, httperr.IsBusiness(err, "pix_key_not_configured"))
}

func TestEncodeRejectsOversizedKey(t *testing.T) {
	p := sample
	p.Key = strings.Repeat("k", 90)

	_, err := Encode(p)
	assert.True(t, errors.Is(err, ErrFieldTooLong))
}

func TestMerchantNormalization(t *testing.T) {
	p := sample
	p.MerchantName = "Salão da Conceição Beleza & Estética"
	p.MerchantCity = "São João del-Rei"

	code, err := Encode(p)
	require.NoError(t, err)
	fields, err := Parse(code)
	require.NoError(t, err)

	assert.Equal(t, "Salao da Conceicao Beleza", field(t, fields, "59"))
	assert.Equal(t, "Sao Joao del-Re", field(t, fields, "60"))

	p.MerchantName = "日本"
	_, err = Encode(p)
	assert.ErrorIs(t, err, ErrMissingMerchant)
}

func TestParseRejectsBrokenInput(t *testing.T) {
	_, err := Parse("0002")
	assert.Error(t, err)
	_, err = Parse("00AB01")
	assert.Error(t, err)
	assert.False(t, Verify("000201"))
}

func field(t *testing.T, fields []Field, id string) string {
	t.Helper()
	for _, f := range fields {
		if f.ID == id {
			return f.Value
		}
	}
	t.Fatalf("field %s not found", id)
	return ""
}

func TestTxIDTruncationKeepsRunesWhole(t *testing.T) {
	p := sample
	p.TxID = strings.Repeat("A", MaxTxIDLength-1) + "Ç"

	code, err := Encode(p)
	require.NoError(t, err)
	assert.True(t, Verify(code))

	txid := field(t, mustParse(t, field(t, mustParse(t, code), "62")), "05")
	assert.True(t, utf8.ValidString(txid))
	assert.Equal(t, strings.Repeat("A", MaxTxIDLength-1), txid)
}

func mustParse(t *testing.T, s string) []Field {
	t.Helper()
	fields, err := Parse(s)
	require.NoError(t, err)
	return fields
}
