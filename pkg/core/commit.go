package core

import (
	"bytes"
	"context"
	"sort"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/errors"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/oneconcern/filemon/pkg/storage"
	sstatus "github.com/oneconcern/filemon/pkg/storage/status"
	"go.uber.org/zap"
)

// CommitParams describes one commit: a new version of a single file
type CommitParams struct {
	Branch      string
	Path        string
	Content     []byte
	Message     string
	Contributor model.Contributor

	// Version overrides the assigned version number. It must sort
	// strictly after the current head for the path.
	Version *model.Version
}

// firstVersion is assigned to the first commit of a path without an override
var firstVersion = model.NewVersion(1, 0)

// Commit stores a new version of a file on a branch and appends it to
// the branch's commit log.
//
// Version numbers are strictly increasing per path within a branch:
// an override at or below the current head fails with
// model.ErrVersionOutOfOrder, and a version already present in the
// object store fails with status.ErrVersionExists.
func (r *Repo) Commit(ctx context.Context, params CommitParams) (model.Commit, error) {
	branch, err := r.loadBranch(ctx, r.meta, params.Branch)
	if err != nil {
		return model.Commit{}, err
	}

	var version model.Version
	if head, ok := branch.Head(params.Path); ok {
		version, err = head.Next(params.Version)
		if err != nil {
			return model.Commit{}, err
		}
	} else if params.Version != nil {
		version = *params.Version
	} else {
		version = firstVersion
	}

	key := model.GetArchivePathToVersion(params.Branch, params.Path, version)
	if err = r.blobs.Put(ctx, key, bytes.NewReader(params.Content), storage.NoOverWrite); err != nil {
		if errors.Is(err, sstatus.ErrExists) {
			return model.Commit{}, status.ErrVersionExists.WrapMessage(err, key)
		}
		return model.Commit{}, err
	}

	commit := model.Commit{
		Path:        params.Path,
		Version:     version,
		Message:     params.Message,
		Contributor: params.Contributor,
		Timestamp:   r.clock(),
		Branch:      params.Branch,
		Seq:         branch.Seq + 1,
	}
	if err = appendCommit(branch, commit); err != nil {
		return model.Commit{}, err
	}
	if err = r.saveBranch(ctx, r.meta, branch); err != nil {
		return model.Commit{}, err
	}

	r.l.Info("committed",
		zap.String("path", params.Path),
		zap.String("version", version.String()),
		zap.String("branch", params.Branch),
	)
	return commit, nil
}

// appendCommit validates version monotonicity per path, then appends
// the commit and moves the head pointer.
func appendCommit(branch *model.BranchDescriptor, commit model.Commit) error {
	if head, ok := branch.Head(commit.Path); ok && !head.Less(commit.Version) {
		return model.ErrVersionOutOfOrder.WrapMessage(nil,
			commit.Version.String()+" does not follow head "+head.String()+" for "+commit.Path)
	}
	if branch.Heads == nil {
		branch.Heads = make(map[string]model.Version)
	}
	branch.Heads[commit.Path] = commit.Version
	branch.Commits = append(branch.Commits, commit)
	if commit.Seq > branch.Seq {
		branch.Seq = commit.Seq
	}
	return nil
}

// Checkout returns the stored content of a file version.
// A nil version selects the branch head for the path.
func (r *Repo) Checkout(ctx context.Context, branchName, path string, version *model.Version) ([]byte, error) {
	branch, err := r.loadBranch(ctx, r.meta, branchName)
	if err != nil {
		return nil, err
	}
	var selected model.Version
	if version != nil {
		selected = *version
	} else {
		head, ok := branch.Head(path)
		if !ok {
			return nil, status.ErrNotFound.WrapMessage(nil, path+" on branch "+branchName)
		}
		selected = head
	}
	buf, err := storage.ReadObject(ctx, r.blobs, model.GetArchivePathToVersion(branchName, path, selected))
	if err != nil {
		if errors.Is(err, sstatus.ErrNotFound) {
			return nil, status.ErrNotFound.WrapMessage(err, path+"@"+selected.String())
		}
		return nil, err
	}
	return buf, nil
}

// ListVersions returns the stored versions of a path on a branch in
// ascending order. An untracked path yields an empty list, not an error.
func (r *Repo) ListVersions(ctx context.Context, branchName, path string) ([]model.Version, error) {
	keys, err := r.blobs.KeysPrefix(ctx, model.GetArchivePathPrefixToVersions(branchName, path))
	if err != nil {
		return nil, err
	}
	versions := make([]model.Version, 0, len(keys))
	for _, key := range keys {
		v, err := model.VersionFromArchivePath(key)
		if err != nil {
			// foreign object in the version key space
			r.l.Warn("skipping unparsable version key", zap.String("key", key))
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })
	return versions, nil
}

// History returns the commits of a branch oldest first, filtered by
// path unless path is empty. The returned slice is a copy.
func (r *Repo) History(ctx context.Context, branchName, path string) ([]model.Commit, error) {
	branch, err := r.loadBranch(ctx, r.meta, branchName)
	if err != nil {
		return nil, err
	}
	history := make([]model.Commit, 0, len(branch.Commits))
	for _, c := range branch.Commits {
		if path != "" && c.Path != path {
			continue
		}
		history = append(history, c)
	}
	return history, nil
}

// Latest returns the most recent commit for a path on a branch
func (r *Repo) Latest(ctx context.Context, branchName, path string) (model.Commit, error) {
	branch, err := r.loadBranch(ctx, r.meta, branchName)
	if err != nil {
		return model.Commit{}, err
	}
	for i := len(branch.Commits) - 1; i >= 0; i-- {
		if branch.Commits[i].Path == path {
			return branch.Commits[i], nil
		}
	}
	return model.Commit{}, status.ErrNotFound.WrapMessage(nil, path+" on branch "+branchName)
}
