// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package genesis

import (
	"context"

	"github.com/worbli/sysgov/pkg/log"
)

type genesisCtxKey struct{}

// WithGenesisContext attaches genesis into context
func WithGenesisContext(ctx context.Context, genesis Genesis) context.Context {
	return context.WithValue(ctx, genesisCtxKey{}, genesis)
}

// ExtractGenesisContext extracts genesis from context if available
func ExtractGenesisContext(ctx context.Context) (Genesis, bool) {
	gc, ok := ctx.Value(genesisCtxKey{}).(Genesis)
	return gc, ok
}

// MustExtractGenesisContext extracts genesis from context if available, else panic
func MustExtractGenesisContext(ctx context.Context) Genesis {
	gc, ok := ctx.Value(genesisCtxKey{}).(Genesis)
	if !ok {
		log.S().Panic("Miss genesis context")
	}
	return gc
}
