package model

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Money — денежная сумма в форинтах. API присылает её числом или строкой,
// отсутствующее значение — null или пустой строкой.
type Money struct {
	decimal.NullDecimal
}

// NewMoney создаёт заданную сумму.
func NewMoney(v int64) Money {
	return Money{decimal.NewNullDecimal(decimal.NewFromInt(v))}
}

// MoneyFromDecimal создаёт сумму из decimal.Decimal.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{decimal.NewNullDecimal(d)}
}

// IsSet сообщает, что сумма присутствует в ответе API.
func (m Money) IsSet() bool {
	return m.Valid
}

// Value возвращает сумму или ноль, если она не задана.
func (m Money) Value() decimal.Decimal {
	if !m.Valid {
		return decimal.Zero
	}
	return m.Decimal
}

// UnmarshalJSON принимает число, строку с числом, пустую строку или null.
func (m *Money) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if trimmed == "" || trimmed == "null" {
		*m = Money{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = MoneyFromDecimal(d)
	return nil
}

// MarshalJSON отдаёт число или null.
func (m Money) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(m.Decimal.String()), nil
}
