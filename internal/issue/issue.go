// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigFileNotFoundId Id = iota + 1
	InvalidPatternId
	PathProbeFailedId
	EnvPublishFailedId
	LogConfigInvalidId
	UnknownKindId
	ConfigParseFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown with the given glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		links := append(slices.Clone(i.docLinks), i.extLinks...)
		for _, link := range links {
			md.WriteString("\n- [" + string(link) + "](" + string(link) + ")")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configFileNotFoundIssue = &Issue{
		id: ConfigFileNotFoundId,
		mdMsg: `
# No configuration file found!

None of the candidate locations holds a file matching the pattern.

## Search locations (in order of precedence):
1. **Path**: explicit paths given with ` + "`--paths`" + ` or ` + "`MEADOWS_PATHS`" + `
2. **Instance**: the current directory and each of its parents
3. **Package**: ` + "`src/`" + `, ` + "`examples/`" + `, ` + "`tests/`" + ` or ` + "`benches/`" + ` below the module root
4. **Local**: your home directory and local configuration directory
5. **User**: your configuration directory
6. **System**: ` + "`/etc`" + ` or ` + "`%PROGRAMDATA%`" + `
7. **Executable**: the directory of the executable

## Things you can try:
- See every location that was checked:
~~~
$ meadows find --all --debug
~~~

- Create ` + "`<name>.config.toml`" + ` in the current directory, or
  ` + "`.<name>/config.toml`" + ` to keep it hidden`,
	}

	invalidPatternIssue = &Issue{
		id: InvalidPatternId,
		mdMsg: `
# Invalid file-name pattern!

The pattern must contain the ` + "`{}`" + ` placeholder, which is replaced by
the search name.

## Examples:
| Pattern           | Name  | File name         |
| ----------------- | ----- | ----------------- |
| ` + "`{}config.toml`" + ` | app   | app.config.toml   |
| ` + "`{}config.toml`" + ` |       | config.toml       |
| ` + "`settings.{}.yaml`" + ` | app | settings.app.yaml |`,
	}

	pathProbeFailedIssue = &Issue{
		id: PathProbeFailedId,
		mdMsg: `
# Could not inspect a configuration path!

A file was found but could not be read or resolved.

## Things you can try:
- Check file and directory permissions
- Make sure symbolic links point to existing files
- Re-run with ` + "`--debug`" + ` to see the path that failed`,
	}

	envPublishFailedIssue = &Issue{
		id: EnvPublishFailedId,
		mdMsg: `
# Could not publish process variables!

Setting ` + "`dir`" + `, ` + "`name`" + `, ` + "`path`" + ` and the other process variables failed.

## Things you can try:
- Run without publication:
~~~
$ meadows find --no-env
~~~`,
	}

	logConfigInvalidIssue = &Issue{
		id: LogConfigInvalidId,
		mdMsg: `
# Invalid log configuration!

The located ` + "`{}log.toml`" + ` file does not match the expected settings.

## Valid settings:
~~~toml
title = "My logging"
level = "info"        # debug, info, warn, error, fatal
formatter = "text"    # text, json, logfmt
prefix = "${name}"
timestamp = false
time_format = "15:04:05"
caller = false
output = "stderr"     # stderr, stdout
~~~`,
	}

	unknownKindIssue = &Issue{
		id: UnknownKindId,
		mdMsg: `
# Unknown executable kind!

## Supported kinds:
- ` + "`binary`" + ` (default)
- ` + "`example`" + `
- ` + "`doc-test`" + `, ` + "`unit-test`" + `, ` + "`integration-test`" + `, ` + "`benchmark-test`" + ``,
	}

	configParseFailedIssue = &Issue{
		id: ConfigParseFailedId,
		mdMsg: `
# Configuration file could not be parsed!

The file was found but is not valid TOML.

## Things you can try:
- Check the syntax near the reported line
- Show the file after variable expansion:
~~~
$ meadows show --expand
~~~`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	issues = map[Id]*Issue{
		configFileNotFoundIssue.Id(): configFileNotFoundIssue,
		invalidPatternIssue.Id():     invalidPatternIssue,
		pathProbeFailedIssue.Id():    pathProbeFailedIssue,
		envPublishFailedIssue.Id():   envPublishFailedIssue,
		logConfigInvalidIssue.Id():   logConfigInvalidIssue,
		unknownKindIssue.Id():        unknownKindIssue,
		configParseFailedIssue.Id():  configParseFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
