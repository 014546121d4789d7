// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the meadows command line.
//
// The commands inspect configuration-file resolution from the outside:
// "find" lists the files a program would pick up and at which precedence
// level, "show" prints the winning file as flattened keys, and "env" dumps
// the environment after the process variables have been published.
//
// Flags can also be set through MEADOWS_* environment variables, e.g.
// MEADOWS_PATHS, MEADOWS_DEBUG, MEADOWS_NAME, MEADOWS_KIND and
// MEADOWS_PATTERN. An explicit flag wins over its variable.
package cmd
