// Copyright © 2019 One Concern

// Package core implements the version control engine: content-addressed
// version storage, per-branch commit logs, branching and merging, tags,
// and reconciliation against a remote repository location.
//
// All state lives in two storage.Store instances: a metadata store for
// branch, tag and lock records and an object store for file content.
// Callers pass the active branch and contributor explicitly: the engine
// keeps no session state.
package core

import (
	"bytes"
	"context"
	"time"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/dlogger"
	"github.com/oneconcern/filemon/pkg/errors"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/oneconcern/filemon/pkg/storage"
	sstatus "github.com/oneconcern/filemon/pkg/storage/status"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v2"
)

// Repo is a single local repository
type Repo struct {
	meta   storage.Store
	blobs  storage.Store
	l      *zap.Logger
	clock  func() time.Time
	remote RemoteFactory
}

// New builds a repository engine over its two backing stores
func New(opts ...Option) *Repo {
	r := &Repo{
		l:      dlogger.MustGetLogger(dlogger.LogLevelNone),
		clock:  time.Now,
		remote: localRemoteFactory,
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Initialize creates the root branch when the repository is empty.
// Re-initializing an existing repository is a no-op.
func (r *Repo) Initialize(ctx context.Context) error {
	key := model.GetArchivePathToBranch(model.DefaultBranch)
	has, err := r.meta.Has(ctx, key)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	branch := &model.BranchDescriptor{
		Name:      model.DefaultBranch,
		Timestamp: r.clock(),
	}
	r.l.Info("initializing repository", zap.String("branch", branch.Name))
	return r.saveBranch(ctx, r.meta, branch)
}

// loadBranch fetches and decodes one branch record from a metadata store
func (r *Repo) loadBranch(ctx context.Context, meta storage.Store, name string) (*model.BranchDescriptor, error) {
	buf, err := storage.ReadObject(ctx, meta, model.GetArchivePathToBranch(name))
	if err != nil {
		if errors.Is(err, sstatus.ErrNotFound) {
			return nil, status.ErrNotFound.WrapMessage(err, "branch "+name)
		}
		return nil, err
	}
	var branch model.BranchDescriptor
	if err := yaml.Unmarshal(buf, &branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

// saveBranch encodes and overwrites one branch record.
// The record is written in a single put: readers never observe a
// partially updated log.
func (r *Repo) saveBranch(ctx context.Context, meta storage.Store, branch *model.BranchDescriptor) error {
	buf, err := yaml.Marshal(branch)
	if err != nil {
		return err
	}
	return meta.Put(ctx, model.GetArchivePathToBranch(branch.Name), bytes.NewReader(buf), storage.OverWrite)
}
