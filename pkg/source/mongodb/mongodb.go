// Package mongodb reads and writes activities in a MongoDB collection.
//
// Each document holds one activity:
//
//	{_id, series, start, finish, type, title}
//
// _id may be a string or an ObjectID. ObjectIDs are read back as their
// hex form, and any id that parses as a 24-digit hex ObjectID is written
// back as an ObjectID, so a save replaces the document it was loaded from.
// start and finish are BSON dates.
package mongodb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
)

const (
	DefaultDatabase   = "rxtimeline"
	DefaultCollection = "activities"
	DefaultTimeout    = 10 * time.Second
)

// Config locates a collection.
type Config struct {
	URI        string
	Database   string
	Collection string
	// Series restricts loads to these resources and, when set, declares
	// them as the lane order.
	Series  []string
	Timeout time.Duration
}

// Loader loads and saves activities in one collection. It connects per
// call, so a Loader holds no open connection between uses.
type Loader struct {
	cfg Config
}

// NewLoader validates cfg and fills in defaults.
func NewLoader(cfg Config) (*Loader, error) {
	if err := errors.ValidateURL(cfg.URI, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Loader{cfg: cfg}, nil
}

// Name identifies the collection. It carries a digest of the URI rather than
// the URI itself, so collections of the same name on different clusters get
// different names without leaking credentials.
func (l *Loader) Name() string {
	sum := sha256.Sum256([]byte(l.cfg.URI))
	return fmt.Sprintf("mongodb:%s.%s@%s", l.cfg.Database, l.cfg.Collection, hex.EncodeToString(sum[:4]))
}

// Load reads every matching activity ordered by start.
func (l *Loader) Load(ctx context.Context) (rxio.Dataset, error) {
	var ds rxio.Dataset
	err := l.withCollection(ctx, func(ctx context.Context, coll *mongo.Collection) error {
		opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "_id", Value: 1}})
		cur, err := coll.Find(ctx, filter(l.cfg.Series), opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var d document
			if err := cur.Decode(&d); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode activity")
			}
			ds.Activities = append(ds.Activities, d.activity())
		}
		return cur.Err()
	})
	if err != nil {
		return rxio.Dataset{}, err
	}
	rxio.AssignIDs(ds.Activities)
	ds.Resources = l.cfg.Series
	return ds, nil
}

// Save upserts acts by id and returns how many documents were written.
func (l *Loader) Save(ctx context.Context, acts []state.Activity) (int64, error) {
	if len(acts) == 0 {
		return 0, nil
	}
	models := make([]mongo.WriteModel, len(acts))
	for i, a := range acts {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": idValue(a.ID)}).
			SetReplacement(fromActivity(a)).
			SetUpsert(true)
	}

	var n int64
	err := l.withCollection(ctx, func(ctx context.Context, coll *mongo.Collection) error {
		res, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
		if err != nil {
			return err
		}
		n = res.UpsertedCount + res.ModifiedCount
		return nil
	})
	return n, err
}

func (l *Loader) withCollection(ctx context.Context, fn func(context.Context, *mongo.Collection) error) error {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(l.cfg.URI))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "connect to %s", l.Name())
	}
	defer func() { _ = client.Disconnect(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, client.Database(l.cfg.Database).Collection(l.cfg.Collection)); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		if ctx.Err() != nil {
			return errors.Wrap(errors.ErrCodeTimeout, err, "%s", l.Name())
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "%s", l.Name())
	}
	return nil
}

func filter(series []string) bson.M {
	if len(series) == 0 {
		return bson.M{}
	}
	return bson.M{"series": bson.M{"$in": series}}
}

type document struct {
	ID     any       `bson:"_id,omitempty"`
	Series string    `bson:"series"`
	Start  time.Time `bson:"start"`
	Finish time.Time `bson:"finish"`
	Type   string    `bson:"type,omitempty"`
	Title  string    `bson:"title,omitempty"`
}

func (d document) activity() state.Activity {
	a := state.Activity{
		Series: d.Series,
		Start:  d.Start.UTC(),
		Finish: d.Finish.UTC(),
		Type:   d.Type,
		Title:  d.Title,
	}
	switch id := d.ID.(type) {
	case nil:
	case string:
		a.ID = id
	case primitive.ObjectID:
		a.ID = id.Hex()
	default:
		a.ID = fmt.Sprint(id)
	}
	return a
}

func fromActivity(a state.Activity) document {
	return document{ID: idValue(a.ID), Series: a.Series, Start: a.Start, Finish: a.Finish, Type: a.Type, Title: a.Title}
}

// idValue maps an activity id back to the _id it was read from.
func idValue(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}
