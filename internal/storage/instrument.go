package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Observer receives one call per completed gateway operation.
type Observer interface {
	ObserveStorageOp(op, collection string, err error, elapsed time.Duration)
}

// Ensure instrumented implements Gateway
var _ Gateway = (*instrumented)(nil)

type instrumented struct {
	next Gateway
	obs  Observer
}

// Instrument wraps g so that every data operation is reported to obs.
func Instrument(g Gateway, obs Observer) Gateway {
	return &instrumented{next: g, obs: obs}
}

func (i *instrumented) Insert(ctx context.Context, collection string, document any) (string, error) {
	start := time.Now()
	id, err := i.next.Insert(ctx, collection, document)
	i.obs.ObserveStorageOp("insert", collection, err, time.Since(start))
	return id, err
}

func (i *instrumented) Find(ctx context.Context, collection string, filter bson.M, sort []SortField, results any) error {
	start := time.Now()
	err := i.next.Find(ctx, collection, filter, sort, results)
	i.obs.ObserveStorageOp("find", collection, err, time.Since(start))
	return err
}

func (i *instrumented) Exists(ctx context.Context, collection string, id bson.ObjectID) (bool, error) {
	start := time.Now()
	ok, err := i.next.Exists(ctx, collection, id)
	i.obs.ObserveStorageOp("exists", collection, err, time.Since(start))
	return ok, err
}

func (i *instrumented) ListCollectionNames(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := i.next.ListCollectionNames(ctx)
	i.obs.ObserveStorageOp("list_collections", "", err, time.Since(start))
	return names, err
}

func (i *instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}

func (i *instrumented) DatabaseName() string {
	return i.next.DatabaseName()
}

func (i *instrumented) Close(ctx context.Context) error {
	return i.next.Close(ctx)
}
