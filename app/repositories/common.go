package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrBlogNotFound is returned by post writes when the referenced blog is
	// gone by the time the post is stored, even though it passed validation.
	ErrBlogNotFound = errors.New("referenced blog not found")
)

const (
	// Key prefixes for the two collections
	BlogKeyPrefix = "blog:"
	PostKeyPrefix = "post:"
)

// maxTxnAttempts bounds how often a conflicting read-modify-write
// transaction is rerun. Every conflict means another writer committed, so
// the bound only needs to exceed the number of concurrent writers.
const maxTxnAttempts = 100

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// ParseID converts an API id into an ObjectID. Anything that is not a
// 24 character hex string is reported as not ok.
func ParseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func entityKey(prefix string, id primitive.ObjectID) []byte {
	return []byte(prefix + id.Hex())
}

func idFromKey(prefix string, key []byte) (primitive.ObjectID, error) {
	hex, ok := strings.CutPrefix(string(key), prefix)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("key %q lacks prefix %q", key, prefix)
	}
	return primitive.ObjectIDFromHex(hex)
}

// marshalEntity encodes a document for storage
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := encMode.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity decodes a stored document
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := cbor.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// update runs fn in a read-write transaction, rerunning it from scratch
// while badger reports a conflict with a concurrent commit.
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction retried %d times: %w", maxTxnAttempts, err)
}
