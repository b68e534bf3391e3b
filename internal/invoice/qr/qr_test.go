package qr

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	encoded, err := Encode("Crewbill Contracting", "300000000000003", issuedAt, 1150.00, 150.00, riyadh)
	require.NoError(t, err)

	payload, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Crewbill Contracting", payload.SellerName)
	assert.Equal(t, "300000000000003", payload.VATNumber)
	assert.Equal(t, "2026-03-15T13:30:00+03:00", payload.Timestamp)
	assert.Equal(t, "1150.00", payload.Total)
	assert.Equal(t, "150.00", payload.VAT)
}

func TestEncode_ByteLayout(t *testing.T) {
	encoded, err := EncodePayload(Payload{
		SellerName: "A",
		VATNumber:  "12",
		Timestamp:  "T",
		Total:      "9.00",
		VAT:        "1.35",
	})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	expected := []byte{
		1, 1, 'A',
		2, 2, '1', '2',
		3, 1, 'T',
		4, 4, '9', '.', '0', '0',
		5, 4, '1', '.', '3', '5',
	}
	assert.Equal(t, expected, raw)
}

func TestEncode_UTF8LengthIsBytes(t *testing.T) {
	// Arabic seller names are multi-byte; the length prefix counts bytes,
	// not runes.
	seller := "مؤسسة"
	encoded, err := EncodePayload(Payload{SellerName: seller, VATNumber: "1", Timestamp: "t", Total: "0.00", VAT: "0.00"})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, byte(TagSellerName), raw[0])
	assert.Equal(t, byte(len([]byte(seller))), raw[1])

	payload, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, seller, payload.SellerName)
}

func TestEncode_FieldTooLong(t *testing.T) {
	_, err := EncodePayload(Payload{
		SellerName: strings.Repeat("x", 256),
		VATNumber:  "1", Timestamp: "t", Total: "0.00", VAT: "0.00",
	})
	assert.ErrorIs(t, err, ErrFieldTooLong)

	// 255 bytes is still fine.
	_, err = EncodePayload(Payload{
		SellerName: strings.Repeat("x", 255),
		VATNumber:  "1", Timestamp: "t", Total: "0.00", VAT: "0.00",
	})
	assert.NoError(t, err)
}

func TestEncode_TimezoneIndependent(t *testing.T) {
	issuedAt := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	a, err := Encode("S", "V", issuedAt, 1, 0.15, riyadh)
	require.NoError(t, err)
	b, err := Encode("S", "V", issuedAt.In(tokyo), 1, 0.15, riyadh)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode("not base64!!")
	assert.ErrorIs(t, err, ErrMalformedPayload)

	// Truncated value bytes.
	raw := []byte{1, 5, 'a', 'b'}
	_, err = Decode(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	// Wrong tag order.
	raw = []byte{2, 1, 'x'}
	_, err = Decode(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	// Missing trailing tags.
	raw = []byte{1, 1, 'x', 2, 1, 'y'}
	_, err = Decode(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
