// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package genesis

import (
	"encoding/hex"
	"sort"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
	"go.uber.org/config"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/name"
	"github.com/worbli/sysgov/pkg/log"
)

// MaxUsageLevel is the highest network usage level
const MaxUsageLevel = 100

// Default contains the default genesis config
var Default = defaultConfig()

// ErrInvalidGenesis is the error that the genesis config is inconsistent
var ErrInvalidGenesis = errors.New("invalid genesis")

func defaultConfig() Genesis {
	return Genesis{
		Blockchain: Blockchain{
			Timestamp: 1546329600,
		},
		System: System{
			SystemAccountStr:  "eosio",
			UsageAdminStr:     "worbli.admin",
			ParamsAdminStr:    "eosio",
			NamesAccountStr:   "eosio.names",
			MaxRAMSize:        64 * 1024 * 1024 * 1024,
			NetworkUsageLevel: 1,
			Params:            action.DefaultBlockchainParameters(),
		},
		Token: Token{
			SymbolStr: "4,SYS",
		},
	}
}

type (
	// Genesis is the root level of genesis config. All the nodes sharing a chain should use EXACTLY SAME genesis
	// config.
	Genesis struct {
		Blockchain `yaml:"blockchain"`
		System     `yaml:"system"`
		Account    `yaml:"account"`
		Token      `yaml:"token"`
	}
	// Blockchain contains blockchain level configs
	Blockchain struct {
		// Timestamp is the unix timestamp of the genesis block
		Timestamp int64 `yaml:"timestamp"`
	}
	// System contains the configs of the system account
	System struct {
		// SystemAccountStr is the account with authority over RAM, privileges and producers
		SystemAccountStr string `yaml:"systemAccount"`
		// UsageAdminStr is the account allowed to raise the network usage level
		UsageAdminStr string `yaml:"usageAdmin"`
		// ParamsAdminStr is the account allowed to set the blockchain parameters
		ParamsAdminStr string `yaml:"paramsAdmin"`
		// NamesAccountStr is the account holding the bids of the name auction
		NamesAccountStr string `yaml:"namesAccount"`
		// MaxRAMSize is the initial RAM ceiling in bytes
		MaxRAMSize uint64 `yaml:"maxRAMSize"`
		// NetworkUsageLevel is the initial network usage level
		NetworkUsageLevel uint8                       `yaml:"networkUsageLevel"`
		Params            action.BlockchainParameters `yaml:"params"`
		Producers         []Producer                  `yaml:"producers"`
	}
	// Producer is a block producer registered at genesis
	Producer struct {
		OwnerStr string `yaml:"owner"`
		// KeyStr is the hex encoded secp256k1 public key
		KeyStr   string `yaml:"key"`
		URL      string `yaml:"url"`
		Location uint16 `yaml:"location"`
	}
	// Account contains the accounts created at genesis, on top of the system accounts
	Account struct {
		InitAccounts []string `yaml:"initAccounts"`
	}
	// Token contains the configs of the system token
	Token struct {
		SymbolStr string `yaml:"symbol"`
		// InitBalanceMap maps an account to its initial balance, e.g. "100.0000 SYS"
		InitBalanceMap map[string]string `yaml:"initBalances"`
	}
)

// New constructs a genesis config. It loads the default values, and could be overwritten by values defined in the yaml
// config files
func New(genesisPath string) (Genesis, error) {
	def := defaultConfig()

	opts := make([]config.YAMLOption, 0)
	opts = append(opts, config.Static(def))
	if genesisPath != "" {
		opts = append(opts, config.File(genesisPath))
	}
	yaml, err := config.NewYAML(opts...)
	if err != nil {
		return Genesis{}, errors.Wrap(err, "error when constructing a genesis in yaml")
	}

	var genesis Genesis
	if err := yaml.Get(config.Root).Populate(&genesis); err != nil {
		return Genesis{}, errors.Wrap(err, "failed to unmarshal yaml genesis to struct")
	}
	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}
	return genesis, nil
}

// Hash is the hash of genesis config
func (g *Genesis) Hash() hash.Hash256 {
	b, err := yaml.Marshal(g)
	if err != nil {
		log.L().Panic("Error when marshaling genesis", zap.Error(err))
	}
	return hash.Hash256b(b)
}

// Validate checks the names, assets and keys of the genesis
func (g *Genesis) Validate() error {
	for _, s := range []string{g.SystemAccountStr, g.UsageAdminStr, g.ParamsAdminStr, g.NamesAccountStr} {
		if _, err := parseAccount(s); err != nil {
			return err
		}
	}
	for _, s := range g.InitAccounts {
		if _, err := parseAccount(s); err != nil {
			return err
		}
	}
	if g.NetworkUsageLevel == 0 || g.NetworkUsageLevel > MaxUsageLevel {
		return errors.Wrapf(ErrInvalidGenesis, "network usage level %d out of range", g.NetworkUsageLevel)
	}
	if g.MaxRAMSize == 0 || g.MaxRAMSize >= action.MaxRAMSizeLimit {
		return errors.Wrapf(ErrInvalidGenesis, "max ram size %d out of range", g.MaxRAMSize)
	}
	if g.Params.MaxAuthorityDepth < action.MinAuthorityDepth {
		return errors.Wrapf(ErrInvalidGenesis, "max authority depth %d is too low", g.Params.MaxAuthorityDepth)
	}
	sym, err := action.ParseSymbol(g.SymbolStr)
	if err != nil {
		return errors.Wrapf(ErrInvalidGenesis, "invalid token symbol: %v", err)
	}
	for acct, amount := range g.InitBalanceMap {
		if _, err := parseAccount(acct); err != nil {
			return err
		}
		asset, err := action.ParseAsset(amount)
		if err != nil {
			return errors.Wrapf(ErrInvalidGenesis, "invalid balance of %s: %v", acct, err)
		}
		if asset.Symbol != sym || asset.Amount < 0 {
			return errors.Wrapf(ErrInvalidGenesis, "invalid balance of %s: %s", acct, amount)
		}
	}
	for _, p := range g.Producers {
		if _, err := parseAccount(p.OwnerStr); err != nil {
			return err
		}
		if _, err := hex.DecodeString(p.KeyStr); err != nil {
			return errors.Wrapf(ErrInvalidGenesis, "invalid key of producer %s", p.OwnerStr)
		}
	}
	return nil
}

func parseAccount(s string) (name.Name, error) {
	n, err := name.FromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidGenesis, "invalid account %q: %v", s, err)
	}
	if n.IsEmpty() {
		return 0, errors.Wrap(ErrInvalidGenesis, "empty account")
	}
	return n, nil
}

func mustParseAccount(s string) name.Name {
	n, err := parseAccount(s)
	if err != nil {
		log.L().Panic("Error when decoding the account name from string.", zap.String("name", s), zap.Error(err))
	}
	return n
}

// SystemAccount is the account with authority over RAM, privileges and producers
func (s *System) SystemAccount() name.Name { return mustParseAccount(s.SystemAccountStr) }

// UsageAdmin is the account allowed to raise the network usage level
func (s *System) UsageAdmin() name.Name { return mustParseAccount(s.UsageAdminStr) }

// ParamsAdmin is the account allowed to set the blockchain parameters
func (s *System) ParamsAdmin() name.Name { return mustParseAccount(s.ParamsAdminStr) }

// NamesAccount is the escrow account of the name auction
func (s *System) NamesAccount() name.Name { return mustParseAccount(s.NamesAccountStr) }

// Owner is the account of the producer
func (p *Producer) Owner() name.Name { return mustParseAccount(p.OwnerStr) }

// Key returns the public key bytes of the producer
func (p *Producer) Key() []byte {
	b, err := hex.DecodeString(p.KeyStr)
	if err != nil {
		log.L().Panic("Error when decoding the producer key.", zap.String("owner", p.OwnerStr), zap.Error(err))
	}
	return b
}

// Accounts returns the accounts to create at genesis, system accounts first, without duplicates
func (g *Genesis) Accounts() []name.Name {
	seen := make(map[name.Name]struct{})
	accts := make([]name.Name, 0)
	add := func(n name.Name) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		accts = append(accts, n)
	}
	add(g.SystemAccount())
	add(g.UsageAdmin())
	add(g.ParamsAdmin())
	add(g.NamesAccount())
	for _, s := range g.InitAccounts {
		add(mustParseAccount(s))
	}
	for _, p := range g.Producers {
		add(p.Owner())
	}
	owners, _ := g.InitBalances()
	for _, n := range owners {
		add(n)
	}
	return accts
}

// TokenSymbol returns the symbol of the system token
func (t *Token) TokenSymbol() action.Symbol {
	sym, err := action.ParseSymbol(t.SymbolStr)
	if err != nil {
		log.L().Panic("Error when parsing the token symbol.", zap.String("symbol", t.SymbolStr), zap.Error(err))
	}
	return sym
}

// InitBalances returns the accounts that have initial balances and the corresponding amounts. The i-th amount is the
// i-th account's balance.
func (t *Token) InitBalances() ([]name.Name, []action.Asset) {
	// Make the list always be ordered
	owners := make([]name.Name, 0, len(t.InitBalanceMap))
	amounts := make(map[name.Name]string, len(t.InitBalanceMap))
	for s, amount := range t.InitBalanceMap {
		n := mustParseAccount(s)
		owners = append(owners, n)
		amounts[n] = amount
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	assets := make([]action.Asset, 0, len(owners))
	for _, n := range owners {
		asset, err := action.ParseAsset(amounts[n])
		if err != nil {
			log.S().Panicf("Error when casting init balance %s of %s into asset", amounts[n], n)
		}
		assets = append(assets, asset)
	}
	return owners, assets
}
