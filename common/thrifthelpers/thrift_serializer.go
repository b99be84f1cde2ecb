// Utils for binary serialization of Thrift structures, used to digest thrift
// values that appear among snapshotted inputs.
package thrifthelpers

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// BinarySerialize encodes sourceStruct with the binary protocol. A nil struct
// serializes to nil.
func BinarySerialize(sourceStruct thrift.TStruct) (b []byte, err error) {
	if sourceStruct == nil {
		return nil, nil
	}

	d := thrift.NewTSerializer()
	return d.Write(sourceStruct)
}

// BinaryDeserialize decodes sourceBytes into targetStruct. Empty input leaves
// targetStruct untouched.
func BinaryDeserialize(targetStruct thrift.TStruct, sourceBytes []byte) (err error) {
	if len(sourceBytes) == 0 {
		return nil
	}

	d := thrift.NewTDeserializer()
	return d.Read(targetStruct, sourceBytes)
}
