// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import "github.com/pkg/errors"

var (
	// ErrInvalidAction indicates error for an action
	ErrInvalidAction = errors.New("invalid action")
	// ErrUnauthorized indicates the required identity did not authorize the action
	ErrUnauthorized = errors.New("missing required authority")
	// ErrInvalidTransition indicates a parameter is moved in a disallowed direction
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrOutOfRange indicates a value is out of its allowed range
	ErrOutOfRange = errors.New("value out of range")
	// ErrNotFound indicates the referenced record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrNamingPolicy indicates the account name breaks the naming policy
	ErrNamingPolicy = errors.New("naming policy violation")
	// ErrAuctionClosed indicates the name auction is already closed
	ErrAuctionClosed = errors.New("auction for name is closed already")
	// ErrSelfOutbid indicates the bidder already holds the high bid
	ErrSelfOutbid = errors.New("account is already highest bidder")
	// ErrInsufficientBid indicates the bid does not beat the high bid by enough
	ErrInsufficientBid = errors.New("insufficient bid")
	// ErrMalformedInput indicates the payload cannot be decoded
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidAsset indicates the asset symbol or amount is invalid
	ErrInvalidAsset = errors.New("invalid asset")
)
