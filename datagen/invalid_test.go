package datagen

import (
	"errors"
	"testing"
)

func TestInvalid_EachKindDiffersFromValidBase(t *testing.T) {
	g := New(WithSeed(1))

	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			payload, err := g.Invalid(kind)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if payload == nil {
				t.Fatal("payload should not be nil")
			}
		})
	}
}

func TestInvalid_KindShapes(t *testing.T) {
	g := New(WithSeed(2))

	tests := []struct {
		kind  InvalidKind
		check func(t *testing.T, p map[string]any)
	}{
		{KindNegativeAmount, func(t *testing.T, p map[string]any) {
			if p["amount"].(float64) >= 0 {
				t.Errorf("amount = %v, want negative", p["amount"])
			}
		}},
		{KindZeroAmount, func(t *testing.T, p map[string]any) {
			if p["amount"].(float64) != 0 {
				t.Errorf("amount = %v, want 0", p["amount"])
			}
		}},
		{KindHugeAmount, func(t *testing.T, p map[string]any) {
			if p["amount"].(float64) != 99999999.99 {
				t.Errorf("amount = %v, want 99999999.99", p["amount"])
			}
		}},
		{KindLowercaseCcy, func(t *testing.T, p map[string]any) {
			if p["currency"] != "usd" {
				t.Errorf("currency = %v, want usd", p["currency"])
			}
		}},
		{KindInvalidType, func(t *testing.T, p map[string]any) {
			if p["type"] != "transfer" {
				t.Errorf("type = %v, want transfer", p["type"])
			}
		}},
		{KindMissingCurrency, func(t *testing.T, p map[string]any) {
			if _, ok := p["currency"]; ok {
				t.Error("currency should be absent")
			}
		}},
		{KindStringAmount, func(t *testing.T, p map[string]any) {
			if _, ok := p["amount"].(string); !ok {
				t.Errorf("amount = %T, want string", p["amount"])
			}
		}},
		{KindNullValues, func(t *testing.T, p map[string]any) {
			for _, key := range []string{"currency", "amount", "type"} {
				if v, ok := p[key]; !ok || v != nil {
					t.Errorf("%s = %v, want present null", key, v)
				}
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			payload, err := g.Invalid(tt.kind)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, payload)
		})
	}
}

func TestInvalid_UnknownKind(t *testing.T) {
	g := New()

	_, err := g.Invalid(InvalidKind("emoji_currency"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("error = %v, want ErrUnknownKind", err)
	}
}

func TestAsSpec(t *testing.T) {
	g := New(WithSeed(3))

	valid, err := g.Invalid(KindLowercaseCcy)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := AsSpec(valid); !ok {
		t.Error("well-typed payload should convert")
	}

	for _, kind := range []InvalidKind{KindMissingAmount, KindStringAmount, KindNullValues} {
		payload, err := g.Invalid(kind)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := AsSpec(payload); ok {
			t.Errorf("%s payload should not convert to a typed spec", kind)
		}
	}
}
