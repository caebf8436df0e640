// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/filemon/pkg/errors"
)

var (
	// ErrNotFound indicates a branch, file, version or tag was not found
	ErrNotFound = errors.New("not found")

	// ErrVersionExists indicates a commit at an already stored (path, version)
	ErrVersionExists = errors.New("version exists already")

	// ErrBranchExists indicates an attempt to recreate an existing branch
	ErrBranchExists = errors.New("branch exists already")

	// ErrTagExists indicates a tag name collision: tags are registered once
	ErrTagExists = errors.New("tag exists already")

	// ErrDiverged rejects a push when the remote holds commits never seen locally
	ErrDiverged = errors.New("remote branch has diverged, pull first")

	// ErrRemoteUnavailable indicates the remote location cannot be reached
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrRemoteLocked indicates another transfer holds the remote advisory lock
	ErrRemoteLocked = errors.New("remote is locked by another transfer")
)
