// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS name constants and the lookup of well-known user and
// system directories (home, configuration, local configuration and system
// configuration), with one Dirs implementation for Unix-like systems and one
// for Windows.
package platform
