// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates decoded configuration data against embedded CUE
// schemas.
//
// Data is usually read from TOML first and then checked in three steps:
//
//  1. Compile the embedded schema
//  2. Encode the decoded Go value and unify it with the schema definition
//  3. Validate and decode into the target struct
//
// # Usage
//
//	//go:embed log_schema.cue
//	var schema []byte
//
//	settings, err := cueutil.Decode[Settings](schema, raw, "#LogConfig",
//	    cueutil.WithFilename("app.log.toml"),
//	)
//	if err != nil {
//	    return err // includes the offending field path
//	}
package cueutil
