package model

import (
	"time"
)

// DefaultBranch is the root branch created by repo initialization
const DefaultBranch = "main"

// BranchDescriptor is the persisted metadata record for one branch:
// its full commit log plus head pointers, reloadable verbatim.
//
// BaseHeads freezes the parent branch's heads at creation time and
// marks the divergence point used by merge. Logs and heads are deep
// copies, never shared between branches.
type BranchDescriptor struct {
	Name        string             `json:"name" yaml:"name"`
	CreatedFrom string             `json:"createdFrom,omitempty" yaml:"createdFrom,omitempty"`
	Timestamp   time.Time          `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Seq         uint64             `json:"seq" yaml:"seq"`
	Heads       map[string]Version `json:"heads,omitempty" yaml:"heads,omitempty"`
	BaseHeads   map[string]Version `json:"baseHeads,omitempty" yaml:"baseHeads,omitempty"`
	Commits     []Commit           `json:"commits,omitempty" yaml:"commits,omitempty"`
	_           struct{}
}

// Head returns the latest version committed for a path, if any
func (b *BranchDescriptor) Head(path string) (Version, bool) {
	v, ok := b.Heads[path]
	return v, ok
}

// BaseHead returns the version a path had at the divergence point, if any
func (b *BranchDescriptor) BaseHead(path string) (Version, bool) {
	v, ok := b.BaseHeads[path]
	return v, ok
}

// HasCommit reports whether the log contains a commit at (path, version)
func (b *BranchDescriptor) HasCommit(path string, version Version) bool {
	for i := range b.Commits {
		c := &b.Commits[i]
		if c.Path == path && c.Version.Compare(version) == 0 {
			return true
		}
	}
	return false
}

// Clone deep-copies the descriptor under a new name, recording provenance.
// This is how branches are created: copies, not live references.
func (b *BranchDescriptor) Clone(name string, at time.Time) *BranchDescriptor {
	clone := &BranchDescriptor{
		Name:        name,
		CreatedFrom: b.Name,
		Timestamp:   at,
		Seq:         b.Seq,
		Heads:       copyHeads(b.Heads),
		BaseHeads:   copyHeads(b.Heads),
		Commits:     make([]Commit, len(b.Commits)),
	}
	copy(clone.Commits, b.Commits)
	return clone
}

func copyHeads(heads map[string]Version) map[string]Version {
	if heads == nil {
		return nil
	}
	cp := make(map[string]Version, len(heads))
	for p, v := range heads {
		cp[p] = v
	}
	return cp
}
