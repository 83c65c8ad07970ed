package testutil

import (
	"strconv"
	"strings"
)

// ConfigBuilder builds converge configuration documents with entries in
// insertion order.
type ConfigBuilder struct {
	entries []*EntryBuilder
}

// NewConfigBuilder creates a new ConfigBuilder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// With appends entries.
func (b *ConfigBuilder) With(entries ...*EntryBuilder) *ConfigBuilder {
	b.entries = append(b.entries, entries...)
	return b
}

// ToYAML renders the document.
func (b *ConfigBuilder) ToYAML() string {
	var sb strings.Builder
	for _, e := range b.entries {
		e.write(&sb)
	}
	return sb.String()
}

// EntryBuilder builds one named entry.
type EntryBuilder struct {
	name    string
	install [][2]string
	files   [][2]string
}

// NewEntry starts an entry called name.
func NewEntry(name string) *EntryBuilder {
	return &EntryBuilder{name: name}
}

// IfFail sets the install probe.
func (e *EntryBuilder) IfFail(probe string) *EntryBuilder {
	return e.set("if_fail", probe)
}

// FromRepo installs spec from the configured repositories.
func (e *EntryBuilder) FromRepo(spec string) *EntryBuilder {
	return e.set("install_from_repo", spec)
}

// FromRemote installs a downloaded package archive.
func (e *EntryBuilder) FromRemote(url string) *EntryBuilder {
	return e.set("install_from_remote_file", url)
}

// WithRepo registers a repository before installing.
func (e *EntryBuilder) WithRepo(url string) *EntryBuilder {
	return e.set("repo", url)
}

// File adds a source to target pair.
func (e *EntryBuilder) File(source, target string) *EntryBuilder {
	e.files = append(e.files, [2]string{source, target})
	return e
}

func (e *EntryBuilder) set(key, value string) *EntryBuilder {
	e.install = append(e.install, [2]string{key, value})
	return e
}

func (e *EntryBuilder) write(sb *strings.Builder) {
	sb.WriteString(quote(e.name) + ":")
	if len(e.install) == 0 && len(e.files) == 0 {
		sb.WriteString(" {}\n")
		return
	}
	sb.WriteString("\n")
	if len(e.install) > 0 {
		sb.WriteString("  install:\n")
		for _, kv := range e.install {
			sb.WriteString("    " + kv[0] + ": " + quote(kv[1]) + "\n")
		}
	}
	if len(e.files) > 0 {
		sb.WriteString("  files:\n")
		for _, kv := range e.files {
			sb.WriteString("    " + quote(kv[0]) + ": " + quote(kv[1]) + "\n")
		}
	}
}

// quote renders s as a double-quoted YAML scalar.
func quote(s string) string {
	return strconv.Quote(s)
}
