// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// MaxPrecision is the maximum number of decimals of a symbol
const MaxPrecision = 18

type (
	// Symbol is a token symbol with its decimal precision
	Symbol struct {
		Precision uint8
		Code      string
	}

	// Asset is an amount of token in its smallest unit
	Asset struct {
		Amount int64
		Symbol Symbol
	}
)

// ParseSymbol parses a symbol of the form "4,SYS"
func ParseSymbol(s string) (Symbol, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Symbol{}, errors.Wrapf(ErrInvalidAsset, "invalid symbol %s", s)
	}
	precision, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
	if err != nil {
		return Symbol{}, errors.Wrapf(ErrInvalidAsset, "invalid symbol precision %s", parts[0])
	}
	sym := Symbol{Precision: uint8(precision), Code: strings.TrimSpace(parts[1])}
	if !sym.IsValid() {
		return Symbol{}, errors.Wrapf(ErrInvalidAsset, "invalid symbol %s", s)
	}
	return sym, nil
}

// IsValid returns true if the code is 1 to 7 upper case letters and precision is in range
func (s Symbol) IsValid() bool {
	if len(s.Code) == 0 || len(s.Code) > 7 || s.Precision > MaxPrecision {
		return false
	}
	for i := 0; i < len(s.Code); i++ {
		if s.Code[i] < 'A' || s.Code[i] > 'Z' {
			return false
		}
	}
	return true
}

// String returns the "4,SYS" form
func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// MarshalText implements encoding.TextMarshaler
func (s Symbol) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Symbol) UnmarshalText(text []byte) error {
	sym, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = sym
	return nil
}

// NewAsset returns an asset
func NewAsset(amount int64, sym Symbol) Asset {
	return Asset{Amount: amount, Symbol: sym}
}

// ParseAsset parses an asset of the form "100.0000 SYS", the precision is the number of decimals
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, errors.Wrapf(ErrInvalidAsset, "invalid asset %s", s)
	}
	amountStr := parts[0]
	var precision int
	if dot := strings.IndexByte(amountStr, '.'); dot >= 0 {
		precision = len(amountStr) - dot - 1
		if precision == 0 {
			return Asset{}, errors.Wrapf(ErrInvalidAsset, "missing decimals in %s", s)
		}
		amountStr = amountStr[:dot] + amountStr[dot+1:]
	}
	if precision > MaxPrecision {
		return Asset{}, errors.Wrapf(ErrInvalidAsset, "too many decimals in %s", s)
	}
	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil {
		return Asset{}, errors.Wrapf(ErrInvalidAsset, "invalid amount in %s", s)
	}
	sym := Symbol{Precision: uint8(precision), Code: parts[1]}
	if !sym.IsValid() {
		return Asset{}, errors.Wrapf(ErrInvalidAsset, "invalid symbol in %s", s)
	}
	return Asset{Amount: amount, Symbol: sym}, nil
}

// MustParseAsset is ParseAsset that panics on error
func MustParseAsset(s string) Asset {
	a, err := ParseAsset(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsValid returns true if the symbol is valid
func (a Asset) IsValid() bool { return a.Symbol.IsValid() }

// String returns the "100.0000 SYS" form
func (a Asset) String() string {
	amount := a.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	digits := strconv.FormatUint(absUint64(amount), 10)
	p := int(a.Symbol.Precision)
	if p == 0 {
		return sign + digits + " " + a.Symbol.Code
	}
	if len(digits) <= p {
		digits = strings.Repeat("0", p-len(digits)+1) + digits
	}
	return sign + digits[:len(digits)-p] + "." + digits[len(digits)-p:] + " " + a.Symbol.Code
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// MarshalText implements encoding.TextMarshaler
func (a Asset) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Asset) UnmarshalText(text []byte) error {
	v, err := ParseAsset(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// EncodeRLP implements rlp.Encoder, the amount is written in two's complement
func (a Asset) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{uint64(a.Amount), a.Symbol.Precision, a.Symbol.Code})
}
