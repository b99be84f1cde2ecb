package snapshot

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Shape is the structural class of a raw value, and of the Node built for it.
type Shape int

const (
	ShapeNull Shape = iota
	ShapeScalar
	ShapeList
	ShapeSet
	ShapeMap
	ShapeOpaque
)

func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapeSet:
		return "set"
	case ShapeMap:
		return "map"
	case ShapeOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Sequence is an ordered sequence of raw values.
type Sequence interface {
	Len() int
	Index(i int) interface{}
}

// Collection is an unordered collection of raw values. The order Each visits
// elements in carries no meaning.
type Collection interface {
	Len() int
	Each(fn func(elem interface{}))
}

// Mapping is a collection of key/value pairs. Ordered reports whether the
// order Range visits pairs in is part of the value, as with insertion ordered
// maps, or incidental, as with Go maps.
type Mapping interface {
	Len() int
	Range(fn func(key, value interface{}))
	Ordered() bool
}

// rawValue is a classified raw value. Exactly one of the shape specific
// fields is set.
type rawValue struct {
	shape   Shape
	scalar  Scalar
	seq     Sequence
	coll    Collection
	mapping Mapping
	value   interface{}
}

// ShapeOf reports the shape a raw value is snapshotted as.
func ShapeOf(value interface{}) Shape {
	return classify(value).shape
}

// classify answers the shape query for value. Capability interfaces win over
// the value's reflect.Kind; anything left over is opaque.
func classify(value interface{}) rawValue {
	switch v := value.(type) {
	case nil:
		return rawValue{shape: ShapeNull}
	case bool:
		return scalarRaw(boolScalar(v))
	case int:
		return scalarRaw(intScalar(int64(v)))
	case int8:
		return scalarRaw(intScalar(int64(v)))
	case int16:
		return scalarRaw(intScalar(int64(v)))
	case int32:
		return scalarRaw(intScalar(int64(v)))
	case int64:
		return scalarRaw(intScalar(v))
	case uint:
		return scalarRaw(uintScalar(uint64(v)))
	case uint8:
		return scalarRaw(uintScalar(uint64(v)))
	case uint16:
		return scalarRaw(uintScalar(uint64(v)))
	case uint32:
		return scalarRaw(uintScalar(uint64(v)))
	case uint64:
		return scalarRaw(uintScalar(v))
	case float32:
		return scalarRaw(floatScalar(float64(v)))
	case float64:
		return scalarRaw(floatScalar(v))
	case string:
		return scalarRaw(stringScalar(v))
	case []byte:
		return scalarRaw(bytesScalar(v))
	case json.Number:
		return scalarRaw(numberScalar(v))
	case Sequence:
		return rawValue{shape: ShapeList, seq: v}
	case Collection:
		return rawValue{shape: ShapeSet, coll: v}
	case Mapping:
		return rawValue{shape: ShapeMap, mapping: v}
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return rawValue{shape: ShapeNull}
		}
	case reflect.Bool:
		return scalarRaw(boolScalar(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalarRaw(intScalar(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalarRaw(uintScalar(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return scalarRaw(floatScalar(rv.Float()))
	case reflect.String:
		return scalarRaw(stringScalar(rv.String()))
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return scalarRaw(bytesScalar(rv.Bytes()))
		}
		return rawValue{shape: ShapeList, seq: reflectSequence{rv}}
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return scalarRaw(bytesScalar(b))
		}
		return rawValue{shape: ShapeList, seq: reflectSequence{rv}}
	case reflect.Map:
		return rawValue{shape: ShapeMap, mapping: reflectMapping{rv}}
	}
	return rawValue{shape: ShapeOpaque, value: value}
}

func scalarRaw(s Scalar) rawValue {
	return rawValue{shape: ShapeScalar, scalar: s}
}

func boolScalar(b bool) Scalar {
	if b {
		return Scalar{kind: KindBool, bits: 1}
	}
	return Scalar{kind: KindBool}
}

func intScalar(i int64) Scalar {
	return Scalar{kind: KindInt, bits: uint64(i)}
}

func uintScalar(u uint64) Scalar {
	return Scalar{kind: KindUint, bits: u}
}

// Floats are canonicalized so that every NaN, and both zeros, have one
// representation each.
func floatScalar(f float64) Scalar {
	switch {
	case math.IsNaN(f):
		f = math.NaN()
	case f == 0:
		f = 0
	}
	return Scalar{kind: KindFloat, bits: math.Float64bits(f)}
}

func stringScalar(s string) Scalar {
	return Scalar{kind: KindString, str: s}
}

// numberScalar never rounds an integral literal: one that fits neither int64
// nor uint64 keeps its exact text, as does a literal float64 cannot hold.
func numberScalar(v json.Number) Scalar {
	text := string(v)
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return intScalar(i)
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return uintScalar(u)
		}
		return Scalar{kind: KindNumber, str: text}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return floatScalar(f)
	}
	return Scalar{kind: KindNumber, str: text}
}

// The string conversion copies b, so later writes to the caller's slice
// cannot reach the snapshot.
func bytesScalar(b []byte) Scalar {
	return Scalar{kind: KindBytes, str: string(b)}
}

type reflectSequence struct {
	rv reflect.Value
}

func (s reflectSequence) Len() int                { return s.rv.Len() }
func (s reflectSequence) Index(i int) interface{} { return s.rv.Index(i).Interface() }

type reflectMapping struct {
	rv reflect.Value
}

func (m reflectMapping) Len() int      { return m.rv.Len() }
func (m reflectMapping) Ordered() bool { return false }
func (m reflectMapping) Range(fn func(key, value interface{})) {
	iter := m.rv.MapRange()
	for iter.Next() {
		fn(iter.Key().Interface(), iter.Value().Interface())
	}
}
