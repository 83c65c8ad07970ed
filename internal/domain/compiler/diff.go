package compiler

import "fmt"

// DiffType represents the type of change a step will make.
type DiffType string

const (
	// DiffTypeAdd indicates a new resource will be created.
	DiffTypeAdd DiffType = "add"
	// DiffTypeModify indicates an existing resource will be modified.
	DiffTypeModify DiffType = "modify"
	// DiffTypeNone indicates no change is needed.
	DiffTypeNone DiffType = "none"
)

// String returns the string representation of the diff type.
func (d DiffType) String() string {
	return string(d)
}

// Resource kinds a Diff can describe.
const (
	ResourcePackage = "package"
	ResourceFile    = "file"
)

// Diff represents a planned change from a step.
type Diff struct {
	diffType DiffType
	resource string
	name     string
}

// NewDiff creates a new Diff.
func NewDiff(diffType DiffType, resource, name string) Diff {
	return Diff{
		diffType: diffType,
		resource: resource,
		name:     name,
	}
}

// Type returns the diff type.
func (d Diff) Type() DiffType {
	return d.diffType
}

// Resource returns the resource kind ("package" or "file").
func (d Diff) Resource() string {
	return d.resource
}

// Name returns the resource name: a package spec or a target path.
func (d Diff) Name() string {
	return d.name
}

// Summary returns the plan line for the diff, e.g.
// "Package will be installed: git" or "File will be updated: /etc/motd".
func (d Diff) Summary() string {
	return fmt.Sprintf("%s will be %s: %s", d.noun(), d.verb(), d.name)
}

// IsEmpty returns true if this diff represents no change.
func (d Diff) IsEmpty() bool {
	return d.diffType == DiffTypeNone || d.diffType == ""
}

func (d Diff) noun() string {
	switch d.resource {
	case ResourcePackage:
		return "Package"
	case ResourceFile:
		return "File"
	}
	return "Resource"
}

func (d Diff) verb() string {
	switch {
	case d.diffType == DiffTypeAdd && d.resource == ResourcePackage:
		return "installed"
	case d.diffType == DiffTypeAdd:
		return "created"
	case d.diffType == DiffTypeModify:
		return "updated"
	}
	return "left unchanged"
}
