// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfigFile(t *testing.T) string {
	return writeFile(t, fmt.Sprintf(`
db:
  dbPath: %s
genesis:
  account:
    initAccounts: ["bob", "carol"]
  token:
    initBalances:
      bob: "100.0000 SYS"
`, filepath.Join(t.TempDir(), "chain.db")))
}

func run(cfgPath string, args ...string) (string, error) {
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestApplyAndShow(t *testing.T) {
	require := require.New(t)
	cfgPath := testConfigFile(t)
	actions := writeFile(t, `
- actor: eosio
  action: setram
  maxRAMSize: 1099511627776
- actor: bob
  action: bidname
  bidder: bob
  newName: wbi
  bid: "2.0000 SYS"
- actor: eosio
  action: newaccount
  creator: eosio
  newName: wbi
`)
	out, err := run(cfgPath, "apply", actions)
	require.NoError(err)
	require.Contains(out, "ok, 1 transfers")

	out, err = run(cfgPath, "show", "global")
	require.NoError(err)
	require.Contains(out, "1099511627776")

	out, err = run(cfgPath, "show", "bids")
	require.NoError(err)
	require.Contains(out, "wbi")
	require.Contains(out, "2.0000 SYS")

	out, err = run(cfgPath, "show", "account", "wbi")
	require.NoError(err)
	require.Contains(out, "eosio")
	require.Contains(out, "0.0000 SYS")

	out, err = run(cfgPath, "show", "account", "bob")
	require.NoError(err)
	require.Contains(out, "98.0000 SYS")
	require.Contains(out, "unlimited")

	out, err = run(cfgPath, "show", "producers")
	require.NoError(err)
	require.Contains(out, "Owner")

	_, err = run(cfgPath, "show", "account", "nobody")
	require.Error(err)
}

func TestApplyFailure(t *testing.T) {
	require := require.New(t)
	cfgPath := testConfigFile(t)
	actions := writeFile(t, `
- actor: bob
  action: setram
  maxRAMSize: 1099511627776
- actor: worbli.admin
  action: setusagelvl
  level: 2
`)
	out, err := run(cfgPath, "apply", actions)
	require.Error(err)
	require.Contains(out, "missing authority of eosio")
	require.NotContains(out, "ok, 0 transfers")

	out, err = run(cfgPath, "apply", "--keep-going", actions)
	require.Error(err)
	require.Contains(out, "ok, 0 transfers")
	require.Contains(out, "1 of 2 actions failed")
}
