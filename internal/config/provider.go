// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/meadows/meadows/internal/process"
)

// Provider locates configuration files from explicit options.
// This abstraction lets callers substitute a fixed result in tests.
type Provider interface {
	Find(ctx context.Context, opts FindOptions) (Match, error)
	FindAll(ctx context.Context, opts FindOptions) ([]Match, error)
}

// NewProvider creates a Provider backed by a Resolver for pc.
func NewProvider(pc *process.Context, opts ...ResolverOption) Provider {
	return NewResolver(pc, opts...)
}
