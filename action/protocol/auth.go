// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/pkg/errors"

	"github.com/worbli/sysgov/action"
	"github.com/worbli/sysgov/name"
)

// HasAuth returns true if the account authorized the action in ctx
func HasAuth(ctx context.Context, acct name.Name) bool {
	ac, ok := GetActionCtx(ctx)
	if !ok {
		return false
	}
	for _, a := range ac.Authorizers {
		if a == acct {
			return true
		}
	}
	return false
}

// RequireAuth fails with action.ErrUnauthorized unless the account authorized the action in ctx
func RequireAuth(ctx context.Context, acct name.Name) error {
	if !HasAuth(ctx, acct) {
		return errors.Wrapf(action.ErrUnauthorized, "missing authority of %s", acct)
	}
	return nil
}
