package sqlite

import (
	"bytes"
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mmynk/healthyliving/internal/storage"
)

// document is one stored row: the raw BSON plus its decoded fields, used for
// filtering and sorting.
type document struct {
	raw    bson.Raw
	fields bson.M
}

// withID encodes doc as BSON and makes sure it carries an _id, generating a
// new ObjectID when the document has none.
func withID(doc any) (bson.Raw, bson.ObjectID, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, bson.NilObjectID, fmt.Errorf("failed to encode document: %w", err)
	}

	var elems bson.D
	if err := bson.Unmarshal(data, &elems); err != nil {
		return nil, bson.NilObjectID, fmt.Errorf("failed to encode document: %w", err)
	}
	for _, e := range elems {
		if e.Key != "_id" {
			continue
		}
		id, ok := e.Value.(bson.ObjectID)
		if !ok {
			return nil, bson.NilObjectID, fmt.Errorf("unsupported _id type %T", e.Value)
		}
		return data, id, nil
	}

	id := bson.NewObjectID()
	elems = append(bson.D{{Key: "_id", Value: id}}, elems...)
	data, err = bson.Marshal(elems)
	if err != nil {
		return nil, bson.NilObjectID, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, id, nil
}

// matches reports whether every filter field equals the document's value.
func matches(fields, filter bson.M) bool {
	for key, want := range filter {
		if !valuesEqual(fields[key], want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	if x, ok := toDate(a); ok {
		y, ok := toDate(b)
		return ok && x == y
	}
	return reflect.DeepEqual(a, b)
}

// Type ranks follow MongoDB's cross-type comparison order.
const (
	rankNull = iota
	rankNumber
	rankString
	rankOther
	rankObjectID
	rankBool
	rankDate
)

func typeRank(v any) int {
	if v == nil {
		return rankNull
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	if _, ok := toDate(v); ok {
		return rankDate
	}
	switch v.(type) {
	case string:
		return rankString
	case bson.ObjectID:
		return rankObjectID
	case bool:
		return rankBool
	default:
		return rankOther
	}
}

func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNumber:
		x, _ := toFloat(a)
		y, _ := toFloat(b)
		return cmp.Compare(x, y)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankObjectID:
		x, y := a.(bson.ObjectID), b.(bson.ObjectID)
		return bytes.Compare(x[:], y[:])
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case rankDate:
		x, _ := toDate(a)
		y, _ := toDate(b)
		return cmp.Compare(x, y)
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toDate returns v as milliseconds since the epoch, the precision BSON keeps.
func toDate(v any) (int64, bool) {
	switch d := v.(type) {
	case bson.DateTime:
		return int64(d), true
	case time.Time:
		return int64(bson.NewDateTimeFromTime(d)), true
	default:
		return 0, false
	}
}

// sortDocuments orders docs by each sort field in turn. The sort is stable,
// so ties keep insertion order.
func sortDocuments(docs []document, sort []storage.SortField) {
	if len(sort) == 0 {
		return
	}
	slices.SortStableFunc(docs, func(a, b document) int {
		for _, f := range sort {
			c := compareValues(a.fields[f.Field], b.fields[f.Field])
			if f.Direction < 0 {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// decodeAll decodes docs into results, a pointer to a slice, the same way a
// MongoDB cursor's All does.
func decodeAll(docs []document, results any) error {
	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("results must be a pointer to a slice, got %T", results)
	}

	slice := rv.Elem()
	elemType := slice.Type().Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, d := range docs {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(d.raw, elem.Interface()); err != nil {
			return fmt.Errorf("failed to decode document: %w", err)
		}
		out = reflect.Append(out, elem.Elem())
	}
	slice.Set(out)
	return nil
}

// stringElement returns the BSON encoding of the top-level element
// key: value when value is a string. A stored document holding that field
// contains these bytes verbatim.
func stringElement(key string, value any) ([]byte, bool) {
	str, ok := value.(string)
	if !ok || key == "_id" {
		return nil, false
	}
	doc, err := bson.Marshal(bson.D{{Key: key, Value: str}})
	if err != nil {
		return nil, false
	}
	// Strip the int32 length prefix and the trailing NUL.
	return doc[4 : len(doc)-1], true
}
