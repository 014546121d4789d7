// SPDX-License-Identifier: MPL-2.0

// Package config locates configuration files.
//
// Given a process.Context and a file-name pattern such as "{}config.toml", a
// Resolver walks a fixed list of candidate locations ordered by precedence
// Level (highest first): explicitly supplied paths, the working directory and
// its ancestors, the build-manifest directory, the user's local and roaming
// configuration directories, the system configuration directory, and the
// directory of the executable. Only binaries search the user, system and
// executable locations; examples and tests stay inside the source tree.
//
// Candidates that resolve to the same file are reported once, under their
// highest level. The package does not read the files it finds.
package config
