package model

import (
	"time"
)

// TagDescriptor pins a name to a single (path, version) pair.
//
// Tags are repository-wide and immutable: a name is registered once.
// Branch records where the tagged version lives in the version store.
type TagDescriptor struct {
	Name        string      `json:"name" yaml:"name"`
	Path        string      `json:"path" yaml:"path"`
	Version     Version     `json:"version" yaml:"version"`
	Branch      string      `json:"branch" yaml:"branch"`
	Contributor Contributor `json:"contributor" yaml:"contributor"`
	Timestamp   time.Time   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Seq         uint64      `json:"seq" yaml:"seq"`
	_           struct{}
}

// SameTarget reports whether two tags point at the same version
func (t *TagDescriptor) SameTarget(o *TagDescriptor) bool {
	return t.Path == o.Path && t.Branch == o.Branch && t.Version.Compare(o.Version) == 0
}
