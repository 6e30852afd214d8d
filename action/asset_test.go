// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseAsset(t *testing.T) {
	r := require.New(t)

	sys := Symbol{Precision: 4, Code: "SYS"}
	for s, expected := range map[string]Asset{
		"100.0000 SYS": {Amount: 1000000, Symbol: sys},
		"0.0001 SYS":   {Amount: 1, Symbol: sys},
		"-1.5000 SYS":  {Amount: -15000, Symbol: sys},
		"7 WBI":        {Amount: 7, Symbol: Symbol{Code: "WBI"}},
	} {
		a, err := ParseAsset(s)
		r.NoError(err, s)
		r.Equal(expected, a)
		r.Equal(s, a.String())
	}
	for _, s := range []string{"", "100.0000", "100. SYS", "1.0000 sys", "1.0000 TOOLONGSYM", "abc SYS", "1.0000000000000000000 SYS"} {
		_, err := ParseAsset(s)
		r.Equal(ErrInvalidAsset, errors.Cause(err), s)
	}
	r.Panics(func() { MustParseAsset("bad") })
}

func TestSymbol(t *testing.T) {
	r := require.New(t)

	sym, err := ParseSymbol("4,SYS")
	r.NoError(err)
	r.Equal(Symbol{Precision: 4, Code: "SYS"}, sym)
	r.Equal("4,SYS", sym.String())
	r.True(sym.IsValid())

	for _, s := range []string{"SYS", "x,SYS", "4,", "19,SYS", "4,sys"} {
		_, err := ParseSymbol(s)
		r.Equal(ErrInvalidAsset, errors.Cause(err), s)
	}

	var text Symbol
	r.NoError(text.UnmarshalText([]byte("2,WBI")))
	r.Equal(Symbol{Precision: 2, Code: "WBI"}, text)
}

func TestAssetString(t *testing.T) {
	r := require.New(t)
	sys := Symbol{Precision: 4, Code: "SYS"}
	r.Equal("0.0005 SYS", NewAsset(5, sys).String())
	r.Equal("-0.0005 SYS", NewAsset(-5, sys).String())
	r.Equal("12.3400 SYS", NewAsset(123400, sys).String())

	var a Asset
	r.NoError(a.UnmarshalText([]byte("1.0000 SYS")))
	text, err := a.MarshalText()
	r.NoError(err)
	r.Equal("1.0000 SYS", string(text))
}
