package codec

import "encoding/json"

func NewJSONCodec[T any]() Codec[T] {
	return Codec[T]{encode: JSONEncode[T], decode: JSONDecode[T], tag: "json"}
}

func JSONEncode[T any](value T) ([]byte, error) {
	return json.Marshal(value)
}

func JSONDecode[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
