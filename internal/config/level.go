// SPDX-License-Identifier: MPL-2.0

package config

import "fmt"

// Levels are ordered by priority: a greater value wins over a smaller one.
const (
	// LevelExecutable files reside next to the executable.
	LevelExecutable Level = iota
	// LevelSystem files reside in the system configuration directory, /etc on
	// Unix and %PROGRAMDATA% on Windows.
	LevelSystem
	// LevelUser files reside in the user's roaming configuration directory.
	LevelUser
	// LevelLocal files reside in the home directory or in the user's local
	// configuration directory.
	LevelLocal
	// LevelPackage files reside below the build-manifest directory of the
	// project the executable belongs to.
	LevelPackage
	// LevelInstance files reside in the working directory or one of its
	// ancestors.
	LevelInstance
	// LevelPath files are given explicitly, or reside in an explicitly given
	// directory.
	LevelPath
)

// Level is the precedence class of a configuration file location.
type Level int

// Levels returns all levels, highest priority first.
func Levels() []Level {
	return []Level{LevelPath, LevelInstance, LevelPackage, LevelLocal, LevelUser, LevelSystem, LevelExecutable}
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelExecutable:
		return "Executable"
	case LevelSystem:
		return "System"
	case LevelUser:
		return "User"
	case LevelLocal:
		return "Local"
	case LevelPackage:
		return "Package"
	case LevelInstance:
		return "Instance"
	case LevelPath:
		return "Path"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}
