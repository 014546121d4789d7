// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of user guidance.
//
// An ActionableError carries the failed operation, the resource involved,
// remediation suggestions and optionally the Id of a catalog entry. Catalog
// entries are Markdown documents rendered for the terminal with glamour,
// e.g. the list of search locations shown when no configuration file exists.
package issue
