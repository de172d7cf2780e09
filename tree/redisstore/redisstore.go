/*
Package redisstore provides an implementation of tree.Store that keeps
trees in a Redis DB.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/id3/tree"
	"gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type EncodeDecoder interface {

	//Encode receives a *tree.Tree
	// and returns a slice of bytes with the tree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Tree) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Tree decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Tree, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	encdec  EncodeDecoder
	closeRC bool
}

/*
New builds a tree.Store backed by a redis DB. Trees are encoded with the
given EncodeDecoder and kept under the "prefix:name" key. Closing the
store does not close the given client.
*/
func New(rc *redis.Client, prefix string, encdec EncodeDecoder) tree.Store {
	return &redisStore{rc: rc, prefix: prefix, encdec: encdec}
}

/*
Open takes a redis URL (redis://[:password@]host[:port][/db]), a prefix and
an EncodeDecoder and returns a tree.Store on a new client for that URL. The
client is closed when the store is closed.
*/
func Open(url, prefix string, encdec EncodeDecoder) (tree.Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %v", err)
	}
	return &redisStore{rc: redis.NewClient(opts), prefix: prefix, encdec: encdec, closeRC: true}, nil
}

func (rs *redisStore) Save(ctx context.Context, name string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	data, err := rs.encdec.Encode(t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %v", key, err)
	}
	_, err = rs.rc.Set(key, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := rs.keyFor(name)
	data, err := rs.rc.Get(key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", key, tree.ErrTreeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", key, err)
	}
	t, err := rs.encdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", key, err)
	}
	return t, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	_, err := rs.rc.Del(key).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	if !rs.closeRC {
		return nil
	}
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
