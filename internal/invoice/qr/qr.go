// Package qr encodes the e-invoicing compliance payload embedded in every
// invoice QR code: a tag-length-value byte sequence of five fields in fixed
// tag order, base64-encoded. The layout is bit-exact by requirement; any
// change to tag order or length computation breaks downstream validators.
package qr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Tags in mandated order. Fields are concatenated 1 through 5 with no
// separators.
const (
	TagSellerName = 1 + iota
	TagVATNumber
	TagTimestamp
	TagTotalAmount
	TagVATAmount
)

// ErrFieldTooLong is returned when a field's UTF-8 encoding exceeds the
// single length byte's capacity. Values are never truncated.
var ErrFieldTooLong = errors.New("qr_field_too_long")

// ErrMalformedPayload is returned by Decode when the TLV structure is
// inconsistent.
var ErrMalformedPayload = errors.New("qr_malformed_payload")

// Payload is the decoded form of the five TLV fields.
type Payload struct {
	SellerName string
	VATNumber  string
	Timestamp  string
	Total      string
	VAT        string
}

// Encode builds the base64 TLV payload. The timestamp is normalized to loc
// so repeated calls for the same instant produce identical bytes regardless
// of host time zone; amounts are rendered with two decimal places.
func Encode(sellerName, vatNumber string, issuedAt time.Time, totalAmount, vatAmount float64, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}

	payload := Payload{
		SellerName: sellerName,
		VATNumber:  vatNumber,
		Timestamp:  issuedAt.In(loc).Format(time.RFC3339),
		Total:      strconv.FormatFloat(totalAmount, 'f', 2, 64),
		VAT:        strconv.FormatFloat(vatAmount, 'f', 2, 64),
	}
	return EncodePayload(payload)
}

// EncodePayload encodes already-rendered field values.
func EncodePayload(payload Payload) (string, error) {
	fields := []struct {
		tag   byte
		value string
	}{
		{TagSellerName, payload.SellerName},
		{TagVATNumber, payload.VATNumber},
		{TagTimestamp, payload.Timestamp},
		{TagTotalAmount, payload.Total},
		{TagVATAmount, payload.VAT},
	}

	var buf []byte
	for _, field := range fields {
		raw := []byte(field.value)
		if len(raw) > 255 {
			return "", fmt.Errorf("%w: tag %d is %d bytes", ErrFieldTooLong, field.tag, len(raw))
		}
		buf = append(buf, field.tag, byte(len(raw)))
		buf = append(buf, raw...)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decode parses a base64 TLV payload back into its five fields. Used for
// verification; tags must appear exactly once each, in order 1 through 5.
func Decode(encoded string) (Payload, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var payload Payload
	expected := byte(TagSellerName)
	for offset := 0; offset < len(raw); {
		if offset+2 > len(raw) {
			return Payload{}, ErrMalformedPayload
		}
		tag := raw[offset]
		length := int(raw[offset+1])
		offset += 2
		if offset+length > len(raw) {
			return Payload{}, ErrMalformedPayload
		}
		if tag != expected {
			return Payload{}, ErrMalformedPayload
		}

		value := string(raw[offset : offset+length])
		offset += length
		switch tag {
		case TagSellerName:
			payload.SellerName = value
		case TagVATNumber:
			payload.VATNumber = value
		case TagTimestamp:
			payload.Timestamp = value
		case TagTotalAmount:
			payload.Total = value
		case TagVATAmount:
			payload.VAT = value
		}
		expected++
	}

	if expected != TagVATAmount+1 {
		return Payload{}, ErrMalformedPayload
	}
	return payload, nil
}
