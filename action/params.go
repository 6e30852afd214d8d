// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/pkg/errors"
)

// MinAuthorityDepth is the lowest max authority depth the chain accepts
const MinAuthorityDepth = 3

// MaxRAMSizeLimit bounds the RAM ceiling, 1 PiB
const MaxRAMSizeLimit = uint64(1) << 50

// BlockchainParameters are the chain-wide limits enforced by the native chain
type BlockchainParameters struct {
	MaxBlockNetUsage               uint64 `yaml:"maxBlockNetUsage"`
	TargetBlockNetUsagePct         uint32 `yaml:"targetBlockNetUsagePct"`
	MaxTransactionNetUsage         uint32 `yaml:"maxTransactionNetUsage"`
	BasePerTransactionNetUsage     uint32 `yaml:"basePerTransactionNetUsage"`
	NetUsageLeeway                 uint32 `yaml:"netUsageLeeway"`
	ContextFreeDiscountNetUsageNum uint32 `yaml:"contextFreeDiscountNetUsageNum"`
	ContextFreeDiscountNetUsageDen uint32 `yaml:"contextFreeDiscountNetUsageDen"`
	MaxBlockCPUUsage               uint32 `yaml:"maxBlockCPUUsage"`
	TargetBlockCPUUsagePct         uint32 `yaml:"targetBlockCPUUsagePct"`
	MaxTransactionCPUUsage         uint32 `yaml:"maxTransactionCPUUsage"`
	MinTransactionCPUUsage         uint32 `yaml:"minTransactionCPUUsage"`
	MaxTransactionLifetime         uint32 `yaml:"maxTransactionLifetime"`
	DeferredTrxExpirationWindow    uint32 `yaml:"deferredTrxExpirationWindow"`
	MaxTransactionDelay            uint32 `yaml:"maxTransactionDelay"`
	MaxInlineActionSize            uint32 `yaml:"maxInlineActionSize"`
	MaxInlineActionDepth           uint16 `yaml:"maxInlineActionDepth"`
	MaxAuthorityDepth              uint16 `yaml:"maxAuthorityDepth"`
}

// DefaultBlockchainParameters returns the parameters of a fresh chain
func DefaultBlockchainParameters() BlockchainParameters {
	return BlockchainParameters{
		MaxBlockNetUsage:               1024 * 1024,
		TargetBlockNetUsagePct:         1000,
		MaxTransactionNetUsage:         512 * 1024,
		BasePerTransactionNetUsage:     12,
		NetUsageLeeway:                 500,
		ContextFreeDiscountNetUsageNum: 20,
		ContextFreeDiscountNetUsageDen: 100,
		MaxBlockCPUUsage:               200000,
		TargetBlockCPUUsagePct:         1000,
		MaxTransactionCPUUsage:         150000,
		MinTransactionCPUUsage:         100,
		MaxTransactionLifetime:         3600,
		DeferredTrxExpirationWindow:    600,
		MaxTransactionDelay:            45 * 24 * 3600,
		MaxInlineActionSize:            4 * 1024,
		MaxInlineActionDepth:           4,
		MaxAuthorityDepth:              6,
	}
}

// Percent100 is the percentage base of the usage targets
const Percent100 = 10000

// MinNetUsageDeltaBetweenBaseAndMaxForTrx is the lowest room left for the payload of a transaction
const MinNetUsageDeltaBetweenBaseAndMaxForTrx = 10 * 1024

// Validate checks that the parameters are consistent with each other
func (p *BlockchainParameters) Validate() error {
	switch {
	case p.TargetBlockNetUsagePct > Percent100:
		return errors.Wrap(ErrOutOfRange, "target block net usage percentage cannot exceed 100%")
	case p.TargetBlockCPUUsagePct > Percent100:
		return errors.Wrap(ErrOutOfRange, "target block cpu usage percentage cannot exceed 100%")
	case uint64(p.MaxTransactionNetUsage) >= p.MaxBlockNetUsage:
		return errors.Wrap(ErrOutOfRange, "max transaction net usage must be less than max block net usage")
	case p.MaxTransactionCPUUsage >= p.MaxBlockCPUUsage:
		return errors.Wrap(ErrOutOfRange, "max transaction cpu usage must be less than max block cpu usage")
	case p.BasePerTransactionNetUsage >= p.MaxTransactionNetUsage:
		return errors.Wrap(ErrOutOfRange, "base net usage per transaction must be less than the max transaction net usage")
	case p.MaxTransactionNetUsage-p.BasePerTransactionNetUsage < MinNetUsageDeltaBetweenBaseAndMaxForTrx:
		return errors.Wrap(ErrOutOfRange, "max transaction net usage must provide room for the transaction payload")
	case p.ContextFreeDiscountNetUsageDen == 0:
		return errors.Wrap(ErrOutOfRange, "net usage discount ratio for context free data cannot have a 0 denominator")
	case p.ContextFreeDiscountNetUsageNum > p.ContextFreeDiscountNetUsageDen:
		return errors.Wrap(ErrOutOfRange, "net usage discount ratio for context free data cannot exceed 1")
	case p.MinTransactionCPUUsage > p.MaxTransactionCPUUsage:
		return errors.Wrap(ErrOutOfRange, "min transaction cpu usage cannot exceed max transaction cpu usage")
	case p.MaxAuthorityDepth < 1:
		return errors.Wrap(ErrOutOfRange, "max authority depth should be at least 1")
	}
	return nil
}
