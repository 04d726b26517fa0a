package datagen

import (
	"errors"
	"fmt"

	"walletprobe/wallet"
)

// ErrUnknownKind indicates an invalidation kind that is not registered.
var ErrUnknownKind = errors.New("unknown invalid payload kind")

// InvalidKind names a specific way a transaction request can be malformed.
type InvalidKind string

const (
	KindNegativeAmount   InvalidKind = "negative_amount"
	KindZeroAmount       InvalidKind = "zero_amount"
	KindHugeAmount       InvalidKind = "huge_amount"
	KindInvalidCurrency  InvalidKind = "invalid_currency"
	KindLowercaseCcy     InvalidKind = "lowercase_currency"
	KindNumericCurrency  InvalidKind = "numeric_currency"
	KindInvalidType      InvalidKind = "invalid_type"
	KindMissingCurrency  InvalidKind = "missing_currency"
	KindMissingAmount    InvalidKind = "missing_amount"
	KindMissingType      InvalidKind = "missing_type"
	KindStringAmount     InvalidKind = "string_amount"
	KindTooManyDecimals  InvalidKind = "too_many_decimals"
	KindNullValues       InvalidKind = "null_values"
)

// Kinds lists every registered invalidation kind in a stable order.
func Kinds() []InvalidKind {
	return []InvalidKind{
		KindNegativeAmount,
		KindZeroAmount,
		KindHugeAmount,
		KindInvalidCurrency,
		KindLowercaseCcy,
		KindNumericCurrency,
		KindInvalidType,
		KindMissingCurrency,
		KindMissingAmount,
		KindMissingType,
		KindStringAmount,
		KindTooManyDecimals,
		KindNullValues,
	}
}

// Invalid builds a transaction request payload broken in exactly the way the
// kind names. The result is a raw map rather than a spec so that shapes a
// typed struct cannot express, such as wrong field types or missing keys,
// stay representable.
func (g *Generator) Invalid(kind InvalidKind) (map[string]any, error) {
	base := g.Spec(WithCurrency("USD"), WithType(wallet.TypeCredit))
	payload := map[string]any{
		"currency": base.Currency,
		"amount":   base.Amount,
		"type":     string(base.Type),
	}

	switch kind {
	case KindNegativeAmount:
		payload["amount"] = -100.50
	case KindZeroAmount:
		payload["amount"] = 0.0
	case KindHugeAmount:
		payload["amount"] = 99999999.99
	case KindInvalidCurrency:
		payload["currency"] = "INVALID"
	case KindLowercaseCcy:
		payload["currency"] = "usd"
	case KindNumericCurrency:
		payload["currency"] = "123"
	case KindInvalidType:
		payload["type"] = "transfer"
	case KindMissingCurrency:
		delete(payload, "currency")
	case KindMissingAmount:
		delete(payload, "amount")
	case KindMissingType:
		delete(payload, "type")
	case KindStringAmount:
		payload["amount"] = "not_a_number"
	case KindTooManyDecimals:
		payload["amount"] = 123.123456
	case KindNullValues:
		payload["currency"] = nil
		payload["amount"] = nil
		payload["type"] = nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return payload, nil
}

// AsSpec converts a raw payload back into a typed spec. It reports false when
// the payload cannot be expressed as one, which is the case for most invalid
// kinds.
func AsSpec(payload map[string]any) (wallet.TransactionSpec, bool) {
	currency, ok := payload["currency"].(string)
	if !ok {
		return wallet.TransactionSpec{}, false
	}
	amount, ok := payload["amount"].(float64)
	if !ok {
		return wallet.TransactionSpec{}, false
	}
	txType, ok := payload["type"].(string)
	if !ok {
		return wallet.TransactionSpec{}, false
	}
	return wallet.TransactionSpec{
		Currency: currency,
		Amount:   amount,
		Type:     wallet.TxType(txType),
	}, true
}
