// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the configuration search hot paths:
//   - candidate planning for every executable kind
//   - first-match and all-matches resolution against a real directory tree
//   - deduplication of files reachable through several candidates
//   - log configuration loading (TOML decoding and CUE validation)
//
// The results can serve as a PGO profile:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
