// Package mongosink implements a MongoDB-backed hexvault audit sink.
// Every Sink instance tags its writes with its own run id so records from
// concurrent or restarted vault processes can be told apart in a shared
// collection.
package mongosink

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hexvault/audit"
)

// Sink writes each audit.Record as one document in a Mongo collection.
type Sink struct {
	client *mongo.Client
	coll   *mongo.Collection
	runID  string
}

// New connects to uri, verifies the connection, and tries to create a
// unique index over (run_id, seq) so a second insert of the same record is
// rejected. A failure to create the index is ignored and does not fail New.
func New(ctx context.Context, uri, dbName, collName string) (*Sink, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, err
	}

	coll := cli.Database(dbName).Collection(collName)
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "run_id", Value: 1}, {Key: "seq", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &Sink{client: cli, coll: coll, runID: uuid.NewString()}, nil
}

type document struct {
	RunID    string `bson:"run_id"`
	Seq      uint64 `bson:"seq"`
	TSMillis int64  `bson:"ts_ms"`
	Src      string `bson:"src"`
	Dst      string `bson:"dst"`
	Layer    string `bson:"layer"`
}

// Write inserts rec as a document tagged with this Sink's run id.
func (s *Sink) Write(rec audit.Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, document{
		RunID:    s.runID,
		Seq:      rec.Seq,
		TSMillis: rec.TSMillis,
		Src:      rec.Src,
		Dst:      rec.Dst,
		Layer:    rec.Layer.Tag(),
	})
	return err
}

// Close disconnects the underlying Mongo client.
func (s *Sink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
