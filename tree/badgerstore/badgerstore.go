/*
Package badgerstore provides an implementation of tree.Store that keeps
trees in an embedded Badger database.
*/
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pbanos/id3/tree"
)

/*
EncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type EncodeDecoder interface {
	Encode(*tree.Tree) ([]byte, error)
	Decode([]byte) (*tree.Tree, error)
}

type badgerStore struct {
	db     *badger.DB
	prefix string
	encdec EncodeDecoder
}

/*
Open takes the path to a directory, a key prefix and an EncodeDecoder and
returns a tree.Store backed by the Badger database in the directory, which
is created if it does not exist. An empty path opens an in-memory database
whose contents are lost on Close.
*/
func Open(path, prefix string, encdec EncodeDecoder) (tree.Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database at %q: %v", path, err)
	}
	return New(db, prefix, encdec), nil
}

/*
New builds a tree.Store on an open Badger database. Trees are encoded with
the given EncodeDecoder and kept under the "prefix:name" key. Closing the
store closes the database.
*/
func New(db *badger.DB, prefix string, encdec EncodeDecoder) tree.Store {
	return &badgerStore{db, prefix, encdec}
}

func (bs *badgerStore) Save(ctx context.Context, name string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := bs.keyFor(name)
	data, err := bs.encdec.Encode(t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %v", key, err)
	}
	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("storing tree %q in badger: %v", key, err)
	}
	return nil
}

func (bs *badgerStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := bs.keyFor(name)
	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("retrieving tree %q: %w", key, tree.ErrTreeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q from badger: %v", key, err)
	}
	t, err := bs.encdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", key, err)
	}
	return t, nil
}

func (bs *badgerStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := bs.keyFor(name)
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("deleting tree %q from badger: %v", key, err)
	}
	return nil
}

func (bs *badgerStore) Close(ctx context.Context) error {
	return bs.db.Close()
}

func (bs *badgerStore) keyFor(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", bs.prefix, name))
}
