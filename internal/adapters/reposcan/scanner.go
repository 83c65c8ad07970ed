// Package reposcan inspects dnf/yum repository definition files.
package reposcan

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/felixgeelhaar/converge/internal/ports"
)

// DefaultDir is where dnf keeps repository definitions.
const DefaultDir = "/etc/yum.repos.d"

// urlKeys are the repo section keys that can carry a repository location.
var urlKeys = []string{"baseurl", "mirrorlist", "metalink"}

// Scanner implements ports.RepoIndex by reading *.repo files in a directory.
type Scanner struct {
	dir string
}

// NewScanner creates a Scanner for dir. An empty dir uses DefaultDir.
func NewScanner(dir string) *Scanner {
	if dir == "" {
		dir = DefaultDir
	}
	return &Scanner{dir: dir}
}

// HasRepo reports whether repoURL is already configured.
//
// A repository counts as configured only when a section of a *.repo file
// points its baseurl, mirrorlist or metalink at repoURL. File names are not
// compared.
func (s *Scanner) HasRepo(repoURL string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.repo"))
	if err != nil {
		return false, fmt.Errorf("scan %s: %w", s.dir, err)
	}

	want := normalize(repoURL)
	for _, file := range files {
		found, err := fileReferences(file, want)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

func fileReferences(file, want string) (bool, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		AllowShadows:            true,
		SkipUnrecognizableLines: true,
	}, file)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", file, err)
	}

	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		for _, key := range urlKeys {
			if !section.HasKey(key) {
				continue
			}
			for _, value := range strings.Fields(section.Key(key).String()) {
				if normalize(value) == want {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func normalize(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// Ensure Scanner implements ports.RepoIndex.
var _ ports.RepoIndex = (*Scanner)(nil)
