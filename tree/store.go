package tree

import (
	"context"
	"sync"
)

// ErrTreeNotFound is the error returned by stores when no tree is kept
// under the requested name.
const ErrTreeNotFound = ClassificationError("tree not found in store")

/*
Store is an interface to manage a store where trees can be saved under a
name, loaded back and deleted.

All it methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type Store interface {
	// Save takes a name and a tree and stores the tree under that name,
	// replacing any tree previously saved with it. It returns an error
	// if the tree cannot be stored.
	Save(ctx context.Context, name string, t *Tree) error
	// Load takes a name and returns the tree stored under it, an error
	// wrapping ErrTreeNotFound if there is none or another error if the
	// store cannot be queried.
	Load(ctx context.Context, name string) (*Tree, error)
	// Delete takes a name and removes the tree stored under it. Deleting
	// a name with no tree is not an error.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should free any resources
	// in use as well as ensure any pending changes are applied before
	// returning (unless the context expires). It returns an error if the
	// Close cannot be completed (because of the context or another error)
	Close(ctx context.Context) error
}

type memoryStore struct {
	trees map[string]*Tree
	lock  *sync.RWMutex
}

// NewMemoryStore returns an implementation of Store with the process
// memory space as underlying backend. Trees are copied when saved and
// loaded, so changes on them do not affect the stored ones.
func NewMemoryStore() Store {
	return &memoryStore{
		trees: make(map[string]*Tree),
		lock:  &sync.RWMutex{},
	}
}

func (ms *memoryStore) Save(ctx context.Context, name string, t *Tree) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.trees[name] = t.Clone()
		return nil
	})
}

func (ms *memoryStore) Load(ctx context.Context, name string) (*Tree, error) {
	var t *Tree
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		st, ok := ms.trees[name]
		if !ok {
			return ErrTreeNotFound
		}
		t = st.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (ms *memoryStore) Delete(ctx context.Context, name string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.trees, name)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}

// Clone returns a deep copy of the tree. Features are shared, as they
// are not modified by trees.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	return &Tree{Root: cloneNode(t.Root), Features: t.Features, Label: t.Label}
}

func cloneNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Pos = cloneNode(n.Pos)
	c.Neg = cloneNode(n.Neg)
	return &c
}
