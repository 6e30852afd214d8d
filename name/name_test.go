// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package name

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	r := require.New(t)

	n, err := FromString("eosio")
	r.NoError(err)
	r.Equal(uint64(0x5530EA0000000000), n.Uint64())
	r.Equal("eosio", n.String())

	for _, s := range []string{"", "a", "eosio.token", "worbli.admin", "abcdefghijkl", "abcdefghijklj", "1.2.3.4.5", ".eos"} {
		n, err := FromString(s)
		r.NoError(err, s)
		r.Equal(s, n.String())
		m, err := FromBytes(n.Bytes())
		r.NoError(err)
		r.Equal(n, m)
	}

	for _, s := range []string{"abcdefghijklmn", "abcdefghijklz", "Alice", "alice6", "al-ce", "alice.", "eosio.."} {
		_, err := FromString(s)
		r.Equal(ErrInvalidName, errors.Cause(err), s)
	}
	_, err = FromBytes([]byte{1, 2})
	r.Equal(ErrInvalidName, errors.Cause(err))
	r.Panics(func() { MustFromString("ALICE") })
}

func TestBytesOrder(t *testing.T) {
	r := require.New(t)
	a := MustFromString("alice")
	b := MustFromString("bob")
	r.Less(a.Uint64(), b.Uint64())
	r.Equal(-1, compare(a.Bytes(), b.Bytes()))
}

func compare(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func TestLength(t *testing.T) {
	r := require.New(t)
	for s, l := range map[string]int{
		"":              0,
		"a":             1,
		"eosio":         5,
		"a.b":           3,
		".a":            2,
		"abcdefghijkl":  12,
		"abcdefghijklj": 13,
		"eosio.token":   11,
	} {
		r.Equal(l, MustFromString(s).Length(), s)
	}
}

func TestLengthClass(t *testing.T) {
	r := require.New(t)
	thirteen := MustFromString("abcdefghijklj")
	r.True(thirteen.IsThirteenChar())
	r.False(thirteen.IsTwelveChar())

	twelve := MustFromString("abcdefghijkl")
	r.False(twelve.IsThirteenChar())
	r.True(twelve.IsTwelveChar())

	short := MustFromString("alice")
	r.False(short.IsThirteenChar())
	r.False(short.IsTwelveChar())
	r.Equal(5, short.LengthClass())
	r.Equal(13, thirteen.LengthClass())
}

func TestSuffix(t *testing.T) {
	r := require.New(t)
	for s, suffix := range map[string]string{
		"":              "",
		"eosio":         "eosio",
		"eosio.token":   "token",
		"a.b.c":         "c",
		"worbli.admin":  "admin",
		".eos":          "eos",
		"abcdefghijkl":  "abcdefghijkl",
		"abcdefghijk.j": "j",
	} {
		r.Equal(suffix, MustFromString(s).Suffix().String(), s)
	}
	r.True(MustFromString("com").IsTopLevel())
	r.False(MustFromString("alice.com").IsTopLevel())
	r.True(Name(0).IsTopLevel())
}

func TestHasDotSlot(t *testing.T) {
	r := require.New(t)
	r.True(MustFromString("eosio").HasDotSlot())
	r.True(MustFromString("alice.com").HasDotSlot())
	r.True(MustFromString("abcdefghijk").HasDotSlot())
	r.True(MustFromString("a.bcdefghijk").HasDotSlot())
	r.False(MustFromString("abcdefghijkl").HasDotSlot())
	r.False(MustFromString("abcdefghijkla").HasDotSlot())
}

func TestText(t *testing.T) {
	r := require.New(t)
	var n Name
	r.NoError(n.UnmarshalText([]byte("alice")))
	r.Equal(MustFromString("alice"), n)
	text, err := n.MarshalText()
	r.NoError(err)
	r.Equal("alice", string(text))
	r.Error(n.UnmarshalText([]byte("ALICE")))
}
