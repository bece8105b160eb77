package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	noodle "github.com/glowcouch/storage-noodle"
	"github.com/glowcouch/storage-noodle/object"
)

// ErrConcurrentUpdate is returned by Update when the object was replaced
// between the existence probe and the conditional write.
var ErrConcurrentUpdate = errors.New("s3: object changed concurrently")

const entityName = "Object"

// ObjectID identifies an object stored in a Backing.
type ObjectID = noodle.AssocID[object.Object, string]

// ObjectCRUD stores object.Object entities in a Backing. The zero value is
// ready to use.
type ObjectCRUD struct{}

var _ noodle.CRUD[object.Object, *Backing, string] = ObjectCRUD{}

// Create stores o under a new random key.
func (ObjectCRUD) Create(ctx context.Context, b *Backing, o object.Object) (ObjectID, error) {
	key, err := NewID()
	if err != nil {
		return ObjectID{}, b.opError(noodle.OpCreate, err)
	}
	if _, err := b.client.Put(ctx, b.bucket, key, o.Data, ""); err != nil {
		return ObjectID{}, b.opError(noodle.OpCreate, err)
	}
	b.logger.DebugContext(ctx, "object created", "key", key, "size", o.Len())
	return noodle.NewAssocID[object.Object](key), nil
}

// Read returns the object stored under id. The whole body is read into
// memory.
func (ObjectCRUD) Read(ctx context.Context, b *Backing, id ObjectID) (object.Object, bool, error) {
	body, err := b.client.Get(ctx, b.bucket, id.Raw())
	switch {
	case IsNoSuchKey(err):
		return object.Object{}, false, nil
	case err != nil:
		return object.Object{}, false, b.opError(noodle.OpRead, err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		if IsNoSuchKey(err) {
			return object.Object{}, false, nil
		}
		return object.Object{}, false, b.opError(noodle.OpRead, err)
	}
	return object.New(data), true, nil
}

// Update replaces the object stored under id. It never creates a key: if
// there is no object under id it reports false and writes nothing.
func (ObjectCRUD) Update(ctx context.Context, b *Backing, id ObjectID, o object.Object) (bool, error) {
	key := id.Raw()
	etag, exists, err := b.stat(ctx, key)
	if err != nil {
		return false, b.opError(noodle.OpUpdate, err)
	}
	if !exists {
		return false, nil
	}
	var match string
	if b.conditional {
		match = etag
	}
	_, err = b.client.Put(ctx, b.bucket, key, o.Data, match)
	switch {
	case err == nil:
		b.logger.DebugContext(ctx, "object updated", "key", key, "size", o.Len())
		return true, nil
	case b.conditional && (IsPreconditionFailed(err) || IsNoSuchKey(err)):
		// Deleted or replaced since the probe.
		_, exists, serr := b.stat(ctx, key)
		switch {
		case serr != nil:
			return false, b.opError(noodle.OpUpdate, serr)
		case !exists:
			return false, nil
		default:
			return false, b.opError(noodle.OpUpdate, fmt.Errorf("%w: %s", ErrConcurrentUpdate, key))
		}
	default:
		return false, b.opError(noodle.OpUpdate, err)
	}
}

// Delete removes the object stored under id. S3 deletes do not report
// missing keys, so existence is probed first; a concurrent delete between
// the probe and the removal makes both callers report true.
func (ObjectCRUD) Delete(ctx context.Context, b *Backing, id ObjectID) (bool, error) {
	key := id.Raw()
	_, exists, err := b.stat(ctx, key)
	if err != nil {
		return false, b.opError(noodle.OpDelete, err)
	}
	if !exists {
		return false, nil
	}
	if err := b.client.Remove(ctx, b.bucket, key); err != nil {
		return false, b.opError(noodle.OpDelete, err)
	}
	b.logger.DebugContext(ctx, "object deleted", "key", key)
	return true, nil
}

// stat probes key, mapping NoSuchKey to exists == false.
func (b *Backing) stat(ctx context.Context, key string) (etag string, exists bool, err error) {
	etag, err = b.client.Stat(ctx, b.bucket, key)
	switch {
	case IsNoSuchKey(err):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return etag, true, nil
}

func (b *Backing) opError(op noodle.Op, err error) error {
	return noodle.NewOpError(b.Name(), op, entityName, err)
}
