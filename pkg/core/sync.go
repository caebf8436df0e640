package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/errors"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/oneconcern/filemon/pkg/storage"
	sstatus "github.com/oneconcern/filemon/pkg/storage/status"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// SyncReport is the outcome of a push or pull, path by path.
//
// Both operations are idempotent: re-running after a successful
// transfer reports empty sets.
type SyncReport struct {
	// Transferred lists the `path@version` entries copied over
	Transferred []string

	// Diverged lists the paths a pull could not fast-forward because
	// both sides changed them independently with different content.
	// Diverged paths are data, not an error: the local branch is left
	// untouched for them.
	Diverged []string

	// Tags lists the tag names copied over
	Tags []string
}

// Push reconciles a remote location with the local state of a branch:
// every (path, version) committed locally and absent remotely is
// uploaded and appended to the remote commit log.
//
// A remote branch holding commits the local log has never seen fails
// with status.ErrDiverged and transfers nothing: there is no force
// push, pull first.
func (r *Repo) Push(ctx context.Context, location, branchName string) (SyncReport, error) {
	var report SyncReport

	local, err := r.loadBranch(ctx, r.meta, branchName)
	if err != nil {
		return report, err
	}

	remote, err := r.openRemote(location)
	if err != nil {
		return report, err
	}
	release, err := r.lockRemote(ctx, remote.Meta, branchName)
	if err != nil {
		return report, err
	}
	defer release()

	rb, err := r.loadBranch(ctx, remote.Meta, branchName)
	if err != nil {
		if !errors.Is(err, status.ErrNotFound) {
			return report, status.ErrRemoteUnavailable.Wrap(err)
		}
		rb = &model.BranchDescriptor{
			Name:        local.Name,
			CreatedFrom: local.CreatedFrom,
			BaseHeads:   local.BaseHeads,
			Timestamp:   local.Timestamp,
		}
	}

	for i := range rb.Commits {
		rc := &rb.Commits[i]
		if !local.HasCommit(rc.Path, rc.Version) {
			return report, status.ErrDiverged.WrapMessage(nil,
				fmt.Sprintf("remote has %s@%s", rc.Path, rc.Version))
		}
	}

	for _, lc := range local.Commits {
		if rb.HasCommit(lc.Path, lc.Version) {
			continue
		}
		key := model.GetArchivePathToVersion(branchName, lc.Path, lc.Version)
		content, err := storage.ReadObject(ctx, r.blobs, key)
		if err != nil {
			return report, err
		}
		if err = putObjectIfAbsent(ctx, remote.Blobs, key, content); err != nil {
			return report, status.ErrRemoteUnavailable.Wrap(err)
		}
		if err = appendCommit(rb, lc); err != nil {
			return report, err
		}
		report.Transferred = append(report.Transferred, fmt.Sprintf("%s@%s", lc.Path, lc.Version))
	}

	// the remote record is rewritten once, after all content landed:
	// an interrupted push leaves at worst unreferenced objects behind
	if len(report.Transferred) > 0 {
		if err = r.saveBranch(ctx, remote.Meta, rb); err != nil {
			return report, status.ErrRemoteUnavailable.Wrap(err)
		}
	}

	tagNames, tagErr := r.copyTags(ctx, r.meta, remote.Meta, remote.Blobs)
	report.Tags = tagNames

	r.l.Info("pushed",
		zap.String("branch", branchName),
		zap.String("remote", location),
		zap.Int("objects", len(report.Transferred)),
	)
	return report, tagErr
}

// Pull reconciles the local state of a branch with a remote location:
// remote-only (path, version) entries are downloaded and appended to
// the local commit log.
//
// Paths changed on both sides follow the merge conflict policy:
// identical content passes silently, different content is reported in
// Diverged and the local branch is left untouched for that path.
// Remote-only tags are copied; a tag name collision with a different
// target surfaces status.ErrTagExists without preferring either side.
func (r *Repo) Pull(ctx context.Context, location, branchName string) (SyncReport, error) {
	var report SyncReport

	local, err := r.loadBranch(ctx, r.meta, branchName)
	if err != nil {
		return report, err
	}

	remote, err := r.openRemote(location)
	if err != nil {
		return report, err
	}
	release, err := r.lockRemote(ctx, remote.Meta, branchName)
	if err != nil {
		return report, err
	}
	defer release()

	rb, err := r.loadBranch(ctx, remote.Meta, branchName)
	if err != nil {
		return report, err
	}

	dirty := false
	for _, path := range unionPaths(local, rb) {
		locals := versionsInLog(local, path)
		remotes := versionsInLog(rb, path)
		common, hasCommon := lastCommonVersion(locals, remotes)

		localAhead := versionsBeyond(locals, common, hasCommon)
		remoteAhead := versionsBeyond(remotes, common, hasCommon)
		if len(remoteAhead) == 0 {
			continue
		}

		if len(localAhead) > 0 {
			same, err := r.sameHeadContent(ctx, remote.Blobs, branchName, path, local, rb)
			if err != nil {
				return report, err
			}
			if !same {
				report.Diverged = append(report.Diverged, path)
			}
			continue
		}

		// fast-forward: replay the remote-only commits locally
		for _, version := range remoteAhead {
			rc, ok := commitAt(rb, path, version)
			if !ok {
				return report, status.ErrNotFound.WrapMessage(nil,
					fmt.Sprintf("remote log entry %s@%s", path, version))
			}
			key := model.GetArchivePathToVersion(branchName, path, version)
			content, err := storage.ReadObject(ctx, remote.Blobs, key)
			if err != nil {
				return report, status.ErrRemoteUnavailable.Wrap(err)
			}
			if err = putObjectIfAbsent(ctx, r.blobs, key, content); err != nil {
				return report, err
			}
			replayed := rc
			replayed.Seq = local.Seq + 1
			if err = appendCommit(local, replayed); err != nil {
				return report, err
			}
			dirty = true
			report.Transferred = append(report.Transferred, fmt.Sprintf("%s@%s", path, version))
		}
	}

	if dirty {
		if err = r.saveBranch(ctx, r.meta, local); err != nil {
			return report, err
		}
	}

	tagNames, tagErr := r.copyTags(ctx, remote.Meta, r.meta, r.blobs)
	report.Tags = tagNames

	sort.Strings(report.Diverged)
	r.l.Info("pulled",
		zap.String("branch", branchName),
		zap.String("remote", location),
		zap.Int("objects", len(report.Transferred)),
		zap.Int("diverged", len(report.Diverged)),
	)
	return report, tagErr
}

// copyTags copies tags absent at the destination, provided their
// target version is held by the destination object store: a dangling
// tag reference is never planted. Name collisions with a different
// target are aggregated into the returned error; identical tags pass
// silently, neither side is preferred.
func (r *Repo) copyTags(ctx context.Context, fromMeta, toMeta, toBlobs storage.Store) ([]string, error) {
	source, err := r.listTags(ctx, fromMeta)
	if err != nil {
		return nil, err
	}

	var (
		copied []string
		merr   error
	)
	for i := range source {
		st := &source[i]
		dt, err := r.loadTag(ctx, toMeta, st.Name)
		switch {
		case err == nil:
			if !dt.SameTarget(st) {
				merr = multierr.Append(merr, status.ErrTagExists.WrapMessage(nil, st.Name))
			}
			continue
		case !errors.Is(err, status.ErrNotFound):
			return copied, err
		}

		targetKey := model.GetArchivePathToVersion(st.Branch, st.Path, st.Version)
		has, err := storage.Exists(ctx, toBlobs, targetKey)
		if err != nil {
			return copied, err
		}
		if !has {
			r.l.Warn("skipping tag, target not held at destination",
				zap.String("tag", st.Name), zap.String("target", targetKey))
			continue
		}

		tag := *st
		if err = r.saveTag(ctx, toMeta, &tag); err != nil {
			return copied, err
		}
		copied = append(copied, st.Name)
	}
	return copied, merr
}

func (r *Repo) openRemote(location string) (Stores, error) {
	stores, err := r.remote(location)
	if err != nil {
		if errors.Is(err, status.ErrRemoteUnavailable) {
			return Stores{}, err
		}
		return Stores{}, status.ErrRemoteUnavailable.Wrap(err)
	}
	return stores, nil
}

// lockRemote takes the scoped advisory lock guarding a remote branch
// during a transfer. The returned release runs on all exit paths and
// does not depend on the caller's context still being live.
func (r *Repo) lockRemote(ctx context.Context, remoteMeta storage.Store, branchName string) (func(), error) {
	key := model.GetArchivePathToLock(branchName)
	host, _ := os.Hostname()
	payload := fmt.Sprintf("%s pid=%d at=%s", host, os.Getpid(), r.clock().UTC().Format("2006-01-02T15:04:05.000Z"))

	err := remoteMeta.Put(ctx, key, strings.NewReader(payload), storage.NoOverWrite)
	if err != nil {
		if errors.Is(err, sstatus.ErrExists) {
			return nil, status.ErrRemoteLocked.WrapMessage(err, key)
		}
		return nil, status.ErrRemoteUnavailable.Wrap(err)
	}
	return func() {
		if derr := remoteMeta.Delete(context.Background(), key); derr != nil {
			r.l.Error("failed to release remote lock", zap.String("key", key), zap.Error(derr))
		}
	}, nil
}

// putObjectIfAbsent writes content at a key, skipping content already
// present at the destination
func putObjectIfAbsent(ctx context.Context, to storage.Store, key string, content []byte) error {
	has, err := to.Has(ctx, key)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return to.Put(ctx, key, bytes.NewReader(content), storage.NoOverWrite)
}

// sameHeadContent compares the bytes at the local and remote heads of a path
func (r *Repo) sameHeadContent(ctx context.Context, remoteBlobs storage.Store, branchName, path string, local, rb *model.BranchDescriptor) (bool, error) {
	lv, ok := local.Head(path)
	if !ok {
		return false, nil
	}
	rv, ok := rb.Head(path)
	if !ok {
		return false, nil
	}
	a, err := storage.ReadObject(ctx, r.blobs, model.GetArchivePathToVersion(branchName, path, lv))
	if err != nil {
		return false, err
	}
	b, err := storage.ReadObject(ctx, remoteBlobs, model.GetArchivePathToVersion(branchName, path, rv))
	if err != nil {
		return false, status.ErrRemoteUnavailable.Wrap(err)
	}
	return bytes.Equal(a, b), nil
}

func unionPaths(a, b *model.BranchDescriptor) []string {
	seen := make(map[string]struct{}, len(a.Heads)+len(b.Heads))
	for p := range a.Heads {
		seen[p] = struct{}{}
	}
	for p := range b.Heads {
		seen[p] = struct{}{}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// versionsInLog lists the versions committed for a path, ascending
func versionsInLog(b *model.BranchDescriptor, path string) []model.Version {
	var versions []model.Version
	for i := range b.Commits {
		if b.Commits[i].Path == path {
			versions = append(versions, b.Commits[i].Version)
		}
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })
	return versions
}

// lastCommonVersion finds the highest version present in both histories
func lastCommonVersion(a, b []model.Version) (model.Version, bool) {
	inB := make(map[model.Version]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	var (
		common model.Version
		found  bool
	)
	for _, v := range a {
		if _, ok := inB[v]; ok {
			common, found = v, true
		}
	}
	return common, found
}

func versionsBeyond(versions []model.Version, common model.Version, hasCommon bool) []model.Version {
	var beyond []model.Version
	for _, v := range versions {
		if hasCommon && !common.Less(v) {
			continue
		}
		beyond = append(beyond, v)
	}
	return beyond
}

func commitAt(b *model.BranchDescriptor, path string, version model.Version) (model.Commit, bool) {
	for i := range b.Commits {
		c := &b.Commits[i]
		if c.Path == path && c.Version.Compare(version) == 0 {
			return *c, true
		}
	}
	return model.Commit{}, false
}
