// SPDX-License-Identifier: MPL-2.0

package process

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
)

// Names of the environment variables published by EnvPublisher. They form a
// compatibility surface for configuration files that expand them.
const (
	EnvDir     = "dir"
	EnvHome    = "home"
	EnvHomeDir = "home_dir"
	EnvName    = "name"
	EnvPath    = "path"
	EnvPid     = "pid"
	EnvInvDir  = "inv_dir"
	EnvInvName = "inv_name"
	EnvInvPath = "inv_path"
	EnvTest    = "test_name"
)

type (
	// EnvVar is a single published environment variable.
	EnvVar struct {
		Name  string
		Value string
	}

	// EnvPublisher exports a fixed set of variables describing the running
	// process, at most once per Context.
	//
	// Publishing calls os.Setenv, which must not race with other goroutines
	// reading or writing the environment. Publish before such goroutines start,
	// or serialize all environment access behind one lock.
	EnvPublisher struct {
		ctx  *Context
		once sync.Once
		done atomic.Bool
		err  error
	}
)

// Vars computes the variable table without setting anything:
//   - always: dir, home and home_dir (when resolvable), name, path, pid;
//   - binaries only: inv_dir, inv_name, inv_path;
//   - tests only: test_name.
func (p *EnvPublisher) Vars() []EnvVar {
	c := p.ctx
	vars := []EnvVar{{EnvDir, c.CanonicalDir()}}
	if home, ok := c.Dirs().HomeDir(); ok {
		vars = append(vars, EnvVar{EnvHome, home}, EnvVar{EnvHomeDir, home})
	}
	vars = append(vars,
		EnvVar{EnvName, c.CanonicalName()},
		EnvVar{EnvPath, c.CanonicalPath()},
		EnvVar{EnvPid, strconv.Itoa(c.Pid())},
	)
	if c.Kind() == KindBinary {
		vars = append(vars,
			EnvVar{EnvInvDir, c.InvocationDir()},
			EnvVar{EnvInvName, c.InvocationName()},
			EnvVar{EnvInvPath, c.InvocationPath()},
		)
	}
	if c.Kind().IsTest() {
		vars = append(vars, EnvVar{EnvTest, c.TestName()})
	}
	return vars
}

// Lookup returns a resolver for ${var} references: published variables
// first, then the environment. Nothing is set.
func (p *EnvPublisher) Lookup() func(string) string {
	vars := make(map[string]string)
	for _, v := range p.Vars() {
		vars[v.Name] = v.Value
	}
	return func(name string) string {
		if value, ok := vars[name]; ok {
			return value
		}
		return p.ctx.Getenv(name)
	}
}

// Publish sets the variables returned by Vars. Only the first call does any
// work; every later call returns the outcome of the first one. If report is
// non-nil it is called for each variable before it is set.
func (p *EnvPublisher) Publish(report func(name, value string)) error {
	p.once.Do(func() {
		p.err = p.publish(report)
		p.done.Store(true)
	})
	return p.err
}

// Published reports whether Publish has run.
func (p *EnvPublisher) Published() bool {
	return p.done.Load()
}

func (p *EnvPublisher) publish(report func(name, value string)) error {
	for _, v := range p.Vars() {
		if report != nil {
			report(v.Name, v.Value)
		}
		if err := p.ctx.src.setenv(v.Name, v.Value); err != nil {
			return fmt.Errorf("set environment variable %q: %w", v.Name, err)
		}
	}
	return nil
}
