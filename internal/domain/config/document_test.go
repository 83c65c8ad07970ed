package config_test

import (
	"testing"

	"github.com/felixgeelhaar/converge/internal/domain/config"
	"github.com/felixgeelhaar/converge/internal/provider/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_KeepsOrder(t *testing.T) {
	t.Parallel()

	doc, err := config.ParseDocument([]byte(`
zsh:
  files:
    zshrc: ${HOME}/.zshrc
    aliases.zsh: ${HOME}/.config/zsh/aliases.zsh
    env.zsh: ${HOME}/.config/zsh/env.zsh
docker:
  install:
    if_fail: which docker
    repo: https://download.docker.com/linux/fedora/docker-ce.repo
    install_from_repo: docker-ce
alpha:
`))
	require.NoError(t, err)
	require.Len(t, doc.Entries, 3)

	assert.Equal(t, "zsh", doc.Entries[0].Name)
	assert.Equal(t, []files.Pair{
		{Source: "zshrc", Target: "${HOME}/.zshrc"},
		{Source: "aliases.zsh", Target: "${HOME}/.config/zsh/aliases.zsh"},
		{Source: "env.zsh", Target: "${HOME}/.config/zsh/env.zsh"},
	}, doc.Entries[0].Files)
	assert.Nil(t, doc.Entries[0].Install)

	assert.Equal(t, "docker", doc.Entries[1].Name)
	assert.Equal(t, "which docker", doc.Entries[1].Install["if_fail"])
	assert.Equal(t, "docker-ce", doc.Entries[1].Install["install_from_repo"])

	assert.Equal(t, "alpha", doc.Entries[2].Name)
	assert.Nil(t, doc.Entries[2].Install)
	assert.Empty(t, doc.Entries[2].Files)
}

func TestParseDocument_Empty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "# nothing yet\n", "~\n"} {
		doc, err := config.ParseDocument([]byte(input))
		require.NoError(t, err, "input %q", input)
		assert.Empty(t, doc.Entries)
	}
}

func TestParseDocument_StructuralErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
		msg     string
	}{
		{name: "top level list", input: "- a\n- b\n", wantErr: config.ErrNotMapping, msg: "entry names"},
		{name: "entry is scalar", input: "git: yes\n", wantErr: config.ErrNotMapping},
		{name: "unknown entry key", input: "git:\n  packages: [git]\n", wantErr: config.ErrUnknownKey, msg: `"packages"`},
		{name: "install is list", input: "git:\n  install:\n    - a\n", wantErr: config.ErrNotMapping, msg: "'install'"},
		{name: "files is list", input: "git:\n  files:\n    - a\n", wantErr: config.ErrNotMapping, msg: "'files'"},
		{name: "duplicate entry", input: "git: {}\ngit: {}\n", wantErr: config.ErrDuplicateEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.ParseDocument([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestParseDocument_NestedFileValue(t *testing.T) {
	t.Parallel()

	_, err := config.ParseDocument([]byte("git:\n  files:\n    gitconfig:\n      target: x\n"))
	assert.ErrorContains(t, err, "must map a source path to a target path")
}

func TestParseDocument_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := config.ParseDocument([]byte("git:\n  install:\n   if_fail: a\n  files: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml:")
}
