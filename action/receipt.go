// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/iotexproject/go-pkgs/hash"

	"github.com/worbli/sysgov/name"
)

const (
	// FailureReceiptStatus is the status that action execution failed
	FailureReceiptStatus = uint64(0)
	// SuccessReceiptStatus is the status that action execution success
	SuccessReceiptStatus = uint64(1)
)

type (
	// Receipt represents the result of an action
	Receipt struct {
		Status          uint64
		BlockHeight     uint64
		ActionHash      hash.Hash256
		ActionKind      string
		transactionLogs []*TransactionLog
	}

	// TransactionLog is a token movement caused by an action
	TransactionLog struct {
		Sender    name.Name
		Recipient name.Name
		Amount    Asset
		Memo      string
	}
)

// AddTransactionLogs appends the logs with non-zero amount
func (receipt *Receipt) AddTransactionLogs(logs ...*TransactionLog) *Receipt {
	for _, l := range logs {
		if l != nil && l.Amount.Amount != 0 {
			receipt.transactionLogs = append(receipt.transactionLogs, l)
		}
	}
	return receipt
}

// TransactionLogs returns the token movements of the action
func (receipt *Receipt) TransactionLogs() []*TransactionLog {
	return receipt.transactionLogs
}
