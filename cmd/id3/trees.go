package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pbanos/id3/tree"
	"github.com/pbanos/id3/tree/badgerstore"
	"github.com/pbanos/id3/tree/json"
	"github.com/pbanos/id3/tree/redisstore"
	"go.uber.org/multierr"
)

const (
	treeKeyPrefix = "id3:tree"
	badgerScheme  = "badger://"
)

func isTreeStore(location string) bool {
	return strings.HasPrefix(location, "redis://") || strings.HasPrefix(location, badgerScheme)
}

// openTreeStore opens the Redis or Badger tree store at the location.
func openTreeStore(rcc *rootCmdConfig, location string) (tree.Store, error) {
	encdec := json.NewEncodeDecoder()
	if strings.HasPrefix(location, badgerScheme) {
		path := strings.TrimPrefix(location, badgerScheme)
		rcc.Logf("Opening Badger tree store at %s...", path)
		return badgerstore.Open(path, treeKeyPrefix, encdec)
	}
	rcc.Logf("Connecting to Redis tree store at %s...", location)
	return redisstore.Open(location, treeKeyPrefix, encdec)
}

/*
outputTree writes the tree to the location: a JSON file, STDOUT if the
location is empty, or a tree store under the given name. For stores a new
UUID is used if no name is given. It returns the name the tree was stored
with, if any.
*/
func outputTree(ctx context.Context, rcc *rootCmdConfig, location, name string, t *tree.Tree) (string, error) {
	if isTreeStore(location) {
		if name == "" {
			name = uuid.NewString()
		}
		store, err := openTreeStore(rcc, location)
		if err != nil {
			return "", err
		}
		err = store.Save(ctx, name, t)
		return name, multierr.Append(err, store.Close(ctx))
	}
	if location == "" {
		return "", json.WriteJSONTree(t, os.Stdout)
	}
	f, err := os.Create(location)
	if err != nil {
		return "", err
	}
	return "", multierr.Append(json.WriteJSONTree(t, f), f.Close())
}

// loadTree reads a tree from a JSON file or from a tree store under
// the given name.
func loadTree(ctx context.Context, rcc *rootCmdConfig, location, name string) (*tree.Tree, error) {
	if isTreeStore(location) {
		if name == "" {
			return nil, fmt.Errorf("a tree name is required to load a tree from %s", location)
		}
		store, err := openTreeStore(rcc, location)
		if err != nil {
			return nil, err
		}
		t, err := store.Load(ctx, name)
		return t, multierr.Append(err, store.Close(ctx))
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", location, err)
	}
	defer f.Close()
	t, err := json.ReadJSONTree(f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %v", location, err)
	}
	return t, err
}
