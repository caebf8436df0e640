package core

import (
	"bytes"
	"context"
	"sort"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/oneconcern/filemon/pkg/storage"
	"go.uber.org/zap"
)

// CreateBranch forks a new branch off an existing one.
//
// The new branch receives deep copies of the parent's commit log and
// head pointers: later commits on either side stay independent. The
// parent's heads are also frozen as the divergence point used by Merge.
func (r *Repo) CreateBranch(ctx context.Context, name, from string) error {
	if name == "" {
		return status.ErrNotFound.WrapMessage(nil, "branch name is required")
	}
	has, err := r.meta.Has(ctx, model.GetArchivePathToBranch(name))
	if err != nil {
		return err
	}
	if has {
		return status.ErrBranchExists.WrapMessage(nil, name)
	}
	parent, err := r.loadBranch(ctx, r.meta, from)
	if err != nil {
		return err
	}
	branch := parent.Clone(name, r.clock())

	// content is keyed per branch and the cloned log references it by
	// (path, version): mirror every logged version of the parent into
	// the new branch's object namespace so no reference dangles
	for i := range branch.Commits {
		c := &branch.Commits[i]
		_, err = storage.ReadTee(ctx,
			r.blobs, model.GetArchivePathToVersion(from, c.Path, c.Version),
			r.blobs, model.GetArchivePathToVersion(name, c.Path, c.Version))
		if err != nil {
			return err
		}
	}

	r.l.Info("branch created", zap.String("branch", name), zap.String("from", from))
	return r.saveBranch(ctx, r.meta, branch)
}

// GetBranch loads a branch record, failing with status.ErrNotFound when absent
func (r *Repo) GetBranch(ctx context.Context, name string) (*model.BranchDescriptor, error) {
	return r.loadBranch(ctx, r.meta, name)
}

// ListBranches returns all branch names sorted
func (r *Repo) ListBranches(ctx context.Context) ([]string, error) {
	keys, err := r.meta.KeysPrefix(ctx, model.GetArchivePathPrefixToBranches())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if name, ok := model.BranchNameFromArchivePath(key); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// MergeResult reports the outcome of a merge, path by path
type MergeResult struct {
	// Merged lists the paths fast-forwarded into the target
	Merged []string

	// Conflicted lists the paths modified on both sides with different
	// content. These are data, not an error: the target is left
	// untouched for them and the caller decides what to do.
	Conflicted []string
}

// Merge folds the changes committed on a source branch since the
// divergence point into a target branch.
//
// The merge is all-or-nothing per path, not per branch: every
// non-conflicting path is fast-forwarded even when others conflict.
// No automatic content merging is attempted.
func (r *Repo) Merge(ctx context.Context, source, target string, contributor model.Contributor) (MergeResult, error) {
	var result MergeResult
	if source == target {
		return result, nil
	}
	src, err := r.loadBranch(ctx, r.meta, source)
	if err != nil {
		return result, err
	}
	tgt, err := r.loadBranch(ctx, r.meta, target)
	if err != nil {
		return result, err
	}

	base := divergenceBase(src, tgt)
	changed := changedSince(src, base)

	dirty := false
	for _, path := range changed {
		srcHead := src.Heads[path]
		tgtHead, tracked := tgt.Head(path)
		baseHead, hasBase := base[path]

		targetChanged := tracked && (!hasBase || baseHead.Less(tgtHead))
		if !targetChanged {
			// fast-forward
			version := srcHead
			if tracked {
				if version, err = tgtHead.Next(nil); err != nil {
					return result, err
				}
			}
			parent := srcHead

			content, err := storage.ReadObject(ctx, r.blobs, model.GetArchivePathToVersion(source, path, srcHead))
			if err != nil {
				return result, err
			}
			key := model.GetArchivePathToVersion(target, path, version)
			if err = r.blobs.Put(ctx, key, bytes.NewReader(content), storage.NoOverWrite); err != nil {
				return result, err
			}
			commit := model.Commit{
				Path:        path,
				Version:     version,
				Parent:      &parent,
				Message:     "merge " + source + " into " + target,
				Contributor: contributor,
				Timestamp:   r.clock(),
				Branch:      target,
				Seq:         tgt.Seq + 1,
			}
			if err = appendCommit(tgt, commit); err != nil {
				return result, err
			}
			dirty = true
			result.Merged = append(result.Merged, path)
			continue
		}

		same, err := r.sameContent(ctx,
			model.GetArchivePathToVersion(source, path, srcHead),
			model.GetArchivePathToVersion(target, path, tgtHead))
		if err != nil {
			return result, err
		}
		if same {
			// both sides converged on identical content
			continue
		}
		result.Conflicted = append(result.Conflicted, path)
	}

	if dirty {
		if err = r.saveBranch(ctx, r.meta, tgt); err != nil {
			return result, err
		}
	}
	sort.Strings(result.Merged)
	sort.Strings(result.Conflicted)
	r.l.Info("merged",
		zap.String("source", source),
		zap.String("target", target),
		zap.Int("paths", len(result.Merged)),
		zap.Int("conflicts", len(result.Conflicted)),
	)
	return result, nil
}

// divergenceBase recovers the heads both branches last agreed on.
// When the branches are not directly related the base is empty and
// every source path counts as changed.
func divergenceBase(src, tgt *model.BranchDescriptor) map[string]model.Version {
	switch {
	case src.CreatedFrom == tgt.Name:
		return src.BaseHeads
	case tgt.CreatedFrom == src.Name:
		return tgt.BaseHeads
	default:
		return nil
	}
}

// changedSince lists the source paths committed since the divergence
// point, sorted for deterministic merge order.
func changedSince(src *model.BranchDescriptor, base map[string]model.Version) []string {
	var changed []string
	for path, head := range src.Heads {
		if baseHead, ok := base[path]; ok && !baseHead.Less(head) {
			continue
		}
		changed = append(changed, path)
	}
	sort.Strings(changed)
	return changed
}

func (r *Repo) sameContent(ctx context.Context, aKey, bKey string) (bool, error) {
	a, err := storage.ReadObject(ctx, r.blobs, aKey)
	if err != nil {
		return false, err
	}
	b, err := storage.ReadObject(ctx, r.blobs, bKey)
	if err != nil {
		return false, err
	}
	return bytes.Equal(a, b), nil
}
