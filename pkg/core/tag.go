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
	yaml "gopkg.in/yaml.v2"
)

// AddTag registers a name for a stored (path, version) pair.
//
// Tag names are repository-wide and registered exactly once: a
// collision fails with status.ErrTagExists and leaves the original
// untouched. The target version must exist in the object store.
func (r *Repo) AddTag(ctx context.Context, name, branch, path string, version model.Version, contributor model.Contributor) error {
	if name == "" {
		return status.ErrNotFound.WrapMessage(nil, "tag name is required")
	}
	has, err := r.meta.Has(ctx, model.GetArchivePathToTag(name))
	if err != nil {
		return err
	}
	if has {
		return status.ErrTagExists.WrapMessage(nil, name)
	}

	targetKey := model.GetArchivePathToVersion(branch, path, version)
	has, err = storage.Exists(ctx, r.blobs, targetKey)
	if err != nil {
		return err
	}
	if !has {
		return status.ErrNotFound.WrapMessage(nil, targetKey)
	}

	tags, err := r.ListTags(ctx)
	if err != nil {
		return err
	}
	var seq uint64
	for _, t := range tags {
		if t.Seq > seq {
			seq = t.Seq
		}
	}

	tag := &model.TagDescriptor{
		Name:        name,
		Path:        path,
		Version:     version,
		Branch:      branch,
		Contributor: contributor,
		Timestamp:   r.clock(),
		Seq:         seq + 1,
	}
	if err = r.saveTag(ctx, r.meta, tag); err != nil {
		return err
	}
	r.l.Info("tagged",
		zap.String("tag", name),
		zap.String("path", path),
		zap.String("version", version.String()),
	)
	return nil
}

// GetTag resolves a tag name
func (r *Repo) GetTag(ctx context.Context, name string) (*model.TagDescriptor, error) {
	return r.loadTag(ctx, r.meta, name)
}

// ListTags returns all tags in insertion order
func (r *Repo) ListTags(ctx context.Context) ([]model.TagDescriptor, error) {
	return r.listTags(ctx, r.meta)
}

func (r *Repo) listTags(ctx context.Context, meta storage.Store) ([]model.TagDescriptor, error) {
	keys, err := meta.KeysPrefix(ctx, model.GetArchivePathPrefixToTags())
	if err != nil {
		return nil, err
	}
	tags := make([]model.TagDescriptor, 0, len(keys))
	for _, key := range keys {
		name, ok := model.TagNameFromArchivePath(key)
		if !ok {
			continue
		}
		tag, err := r.loadTag(ctx, meta, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Seq < tags[j].Seq })
	return tags, nil
}

func (r *Repo) loadTag(ctx context.Context, meta storage.Store, name string) (*model.TagDescriptor, error) {
	buf, err := storage.ReadObject(ctx, meta, model.GetArchivePathToTag(name))
	if err != nil {
		if errors.Is(err, sstatus.ErrNotFound) {
			return nil, status.ErrNotFound.WrapMessage(err, "tag "+name)
		}
		return nil, err
	}
	var tag model.TagDescriptor
	if err := yaml.Unmarshal(buf, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *Repo) saveTag(ctx context.Context, meta storage.Store, tag *model.TagDescriptor) error {
	buf, err := yaml.Marshal(tag)
	if err != nil {
		return err
	}
	err = meta.Put(ctx, model.GetArchivePathToTag(tag.Name), bytes.NewReader(buf), storage.NoOverWrite)
	if err != nil && errors.Is(err, sstatus.ErrExists) {
		return status.ErrTagExists.WrapMessage(err, tag.Name)
	}
	return err
}
