package core

import (
	"os"
	"path/filepath"
	"time"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/storage"
	"github.com/oneconcern/filemon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option is a functor to build a repository with some options
type Option func(*Repo)

// MetaStore sets the store holding branch, tag and lock records
func MetaStore(store storage.Store) Option {
	return func(r *Repo) {
		r.meta = store
	}
}

// BlobStore sets the store holding version content
func BlobStore(store storage.Store) Option {
	return func(r *Repo) {
		r.blobs = store
	}
}

// Logger sets a logger for this repository
func Logger(l *zap.Logger) Option {
	return func(r *Repo) {
		if l != nil {
			r.l = l
		}
	}
}

// Clock overrides the commit timestamp source (used by tests)
func Clock(now func() time.Time) Option {
	return func(r *Repo) {
		if now != nil {
			r.clock = now
		}
	}
}

// Stores bundles the two stores backing one repository location
type Stores struct {
	Meta  storage.Store
	Blobs storage.Store
}

// RemoteFactory opens the store pair for a remote repository location
type RemoteFactory func(location string) (Stores, error)

// Remote overrides how remote locations are opened (used by tests)
func Remote(factory RemoteFactory) Option {
	return func(r *Repo) {
		if factory != nil {
			r.remote = factory
		}
	}
}

// LocalStores builds the default store pair rooted at a repository directory
func LocalStores(dir string) Stores {
	base := afero.NewOsFs()
	return Stores{
		Meta:  localfs.New(afero.NewBasePathFs(base, filepath.Join(dir, "meta"))),
		Blobs: localfs.New(afero.NewBasePathFs(base, filepath.Join(dir, "objects"))),
	}
}

// localRemoteFactory reaches a remote repository as a plain directory path
func localRemoteFactory(location string) (Stores, error) {
	if err := os.MkdirAll(location, 0700); err != nil {
		return Stores{}, status.ErrRemoteUnavailable.WrapMessage(err, location)
	}
	return LocalStores(location), nil
}
