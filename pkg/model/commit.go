package model

import (
	"fmt"
	"time"
)

// Contributor who authored a commit or tag
type Contributor struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	_     struct{}
}

func (c Contributor) String() string {
	if c.Email == "" {
		return c.Name
	}
	if c.Name == "" {
		return c.Email
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

// Commit is one immutable entry in a branch's commit log: a single
// version of a single file.
//
// Parent carries merge provenance: the source branch version a
// fast-forwarded commit was produced from.
type Commit struct {
	Path        string      `json:"path" yaml:"path"`
	Version     Version     `json:"version" yaml:"version"`
	Parent      *Version    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Message     string      `json:"message,omitempty" yaml:"message,omitempty"`
	Contributor Contributor `json:"contributor" yaml:"contributor"`
	Timestamp   time.Time   `json:"timestamp" yaml:"timestamp"`
	Branch      string      `json:"branch" yaml:"branch"`
	Seq         uint64      `json:"seq" yaml:"seq"`
	_           struct{}
}

func (c *Commit) String() string {
	return fmt.Sprintf("%s@%s [%s]", c.Path, c.Version.String(), c.Branch)
}
