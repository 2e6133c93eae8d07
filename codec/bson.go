package codec

import "gopkg.in/mgo.v2/bson"

func NewBSONCodec[T any]() Codec[T] {
	return Codec[T]{encode: BSONEncode[T], decode: BSONDecode[T], tag: "bson"}
}

func BSONEncode[T any](value T) ([]byte, error) {
	return bson.Marshal(value)
}

func BSONDecode[T any](data []byte) (T, error) {
	var v T
	err := bson.Unmarshal(data, &v)
	return v, err
}
