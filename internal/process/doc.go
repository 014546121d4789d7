// SPDX-License-Identifier: MPL-2.0

// Package process describes the running executable: its kind, its
// invocation and canonical paths and names, the stable test name of test
// executables, and the environment variables published for configuration
// files to expand.
//
// A Context is meant to be created once at startup and passed to whatever
// needs it. Its values are computed lazily and cached; its EnvPublisher sets
// environment variables at most once.
package process
