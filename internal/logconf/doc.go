// SPDX-License-Identifier: MPL-2.0

// Package logconf configures the process logger from a {name}log.toml file
// located with the configuration resolver.
//
// Binaries call Init early in main and keep running when it fails, printing
// the error only if InitError.ShouldPrint says so. Examples and tests call
// InitTest from every test; a missing file there means default settings.
// Both configure logging at most once per process.
//
// Before decoding, ${var} references in the file are expanded using the
// published process variables (dir, name, path, pid, ...) and then the
// environment, so a file can say
//
//	prefix = "${name}[${pid}]"
package logconf
