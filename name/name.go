// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package name implements 64-bit packed account names: up to twelve base-32 characters
// from ".12345abcdefghijklmnopqrstuvwxyz" followed by an optional thirteenth character
// restricted to ".12345abcdefghij".
package name

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxLength is the maximum number of characters of a name
	MaxLength = 13

	_charmap = ".12345abcdefghijklmnopqrstuvwxyz"
	_mask    = uint64(0xF800000000000000)
)

// ErrInvalidName indicates the invalid name error
var ErrInvalidName = errors.New("invalid name")

// Name is an account name packed into 64 bits
type Name uint64

// FromString encodes a name string. The string must be normalized: at most 13
// characters of the name charset, a thirteenth character no greater than 'j'
// and no trailing dot.
func FromString(s string) (Name, error) {
	if len(s) > MaxLength {
		return 0, errors.Wrapf(ErrInvalidName, "name %s is longer than %d characters", s, MaxLength)
	}
	if strings.HasSuffix(s, ".") {
		return 0, errors.Wrapf(ErrInvalidName, "name %s has trailing dots", s)
	}
	var value uint64
	for i := 0; i < len(s); i++ {
		c, err := charToSymbol(s[i])
		if err != nil {
			return 0, errors.Wrapf(err, "name %s", s)
		}
		if i < 12 {
			value |= c << (64 - 5*uint(i+1))
			continue
		}
		if c > 0x0F {
			return 0, errors.Wrapf(ErrInvalidName, "thirteenth character of name %s must be in [.1-5a-j]", s)
		}
		value |= c
	}
	return Name(value), nil
}

// MustFromString is FromString that panics on error
func MustFromString(s string) Name {
	n, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromBytes decodes the big-endian 8-byte form of a name
func FromBytes(b []byte) (Name, error) {
	if len(b) != 8 {
		return 0, errors.Wrapf(ErrInvalidName, "invalid name length in bytes: %d", len(b))
	}
	return Name(binary.BigEndian.Uint64(b)), nil
}

func charToSymbol(c byte) (uint64, error) {
	switch {
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 6, nil
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 1, nil
	case c == '.':
		return 0, nil
	default:
		return 0, errors.Wrapf(ErrInvalidName, "invalid character %q", c)
	}
}

// String decodes the name, trailing dots trimmed
func (n Name) String() string {
	var buf [MaxLength]byte
	tmp := uint64(n)
	for i := 0; i < MaxLength; i++ {
		if i == 0 {
			buf[12] = _charmap[tmp&0x0F]
			tmp >>= 4
			continue
		}
		buf[12-i] = _charmap[tmp&0x1F]
		tmp >>= 5
	}
	return strings.TrimRight(string(buf[:]), ".")
}

// Uint64 returns the packed value
func (n Name) Uint64() uint64 { return uint64(n) }

// Bytes returns the big-endian form, so that byte order equals numeric order
func (n Name) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}

// IsEmpty returns true for the empty name
func (n Name) IsEmpty() bool { return n == 0 }

// Length returns the number of characters up to and including the last non-dot one
func (n Name) Length() int {
	if n == 0 {
		return 0
	}
	l := 0
	v := uint64(n)
	for i := 0; i < MaxLength; i++ {
		if v&_mask > 0 {
			l = i
		}
		v <<= 5
	}
	return l + 1
}

// LengthClass is the length class of the name, from 0 to 13
func (n Name) LengthClass() int { return n.Length() }

// IsThirteenChar returns true if the thirteenth character is not a dot
func (n Name) IsThirteenChar() bool { return uint64(n)&0x0F != 0 }

// IsTwelveChar returns true if the twelfth character is the last non-dot one
func (n Name) IsTwelveChar() bool { return uint64(n)&0x0F == 0 && uint64(n)&0x1F0 != 0 }

// Suffix returns the part of the name after the last dot that is followed by a
// non-dot character, or the name itself if there is none
func (n Name) Suffix() Name {
	value := uint64(n)
	var afterLastDot, tmp uint
	for remaining := 59; remaining >= 4; remaining -= 5 {
		if (value>>uint(remaining))&0x1F == 0 {
			tmp = uint(remaining)
		} else {
			afterLastDot = tmp
		}
	}
	thirteenth := value & 0x0F
	if thirteenth != 0 {
		afterLastDot = tmp
	}
	if afterLastDot == 0 {
		return n
	}
	mask := (uint64(1) << afterLastDot) - 16
	shift := 64 - afterLastDot
	return Name(((value & mask) << shift) + (thirteenth << (shift - 1)))
}

// IsTopLevel returns true if the name is its own suffix
func (n Name) IsTopLevel() bool { return n.Suffix() == n }

// HasDotSlot returns true if any of the first twelve character slots is a dot,
// which includes the padding of names shorter than twelve characters
func (n Name) HasDotSlot() bool {
	tmp := uint64(n) >> 4
	for i := 0; i < 12; i++ {
		if tmp&0x1F == 0 {
			return true
		}
		tmp >>= 5
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (n Name) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (n *Name) UnmarshalText(text []byte) error {
	v, err := FromString(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}
