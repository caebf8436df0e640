// Copyright © 2019 One Concern

// Package storage provides an interface to handle backend storage objects.
//
// Repository state, local or remote, is a flat key space of objects:
// this package never interprets keys beyond treating them as paths.
package storage

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"

	"github.com/oneconcern/filemon/pkg/errors"
	"github.com/oneconcern/filemon/pkg/storage/status"
)

const (
	// NoOverWrite means a Put expects the key to not exist yet
	NoOverWrite = true

	// OverWrite means a Put replaces any previous object at the key
	OverWrite = false
)

// Store implementations know how to write entries to a K/V store.
//
// Typically this is something file system-like. Implementations of this
// interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, source io.Reader, doesNotExist bool) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	KeysPrefix(ctx context.Context, prefix string) ([]string, error)
	Clear(context.Context) error
}

// PipeIO copies the reader to the writer and reports the bytes moved
func PipeIO(writer io.Writer, reader io.Reader) (n int64, err error) {
	buf := make([]byte, 32*1024)
	return io.CopyBuffer(writer, reader, buf)
}

// ReadObject fetches a whole object into memory
func ReadObject(ctx context.Context, store Store, key string) ([]byte, error) {
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return ioutil.ReadAll(reader)
}

// ReadTee reads from a source and duplicates the output to another destination store
func ReadTee(ctx context.Context, sStore Store, source string, dStore Store, destination string) ([]byte, error) {
	object, err := ReadObject(ctx, sStore, source)
	if err != nil {
		return nil, err
	}
	if err = dStore.Put(ctx, destination, bytes.NewReader(object), NoOverWrite); err != nil {
		return nil, err
	}
	return object, nil
}

// Exists reports key presence, folding status.ErrNotFound into false
func Exists(ctx context.Context, store Store, key string) (bool, error) {
	has, err := store.Has(ctx, key)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return has, nil
}
