package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBORContentType CBOR content type
const CBORContentType = "application/cbor"

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
	dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]interface{}(nil))}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

// CBOR encodes plain values with canonical (deterministic) CBOR; maps decode as map[string]interface{},
// non negative integers as uint64 and negative ones as int64
type CBOR struct{}

func (c CBOR) ContentType() string {
	return CBORContentType
}

func (c CBOR) Marshal(value interface{}) ([]byte, error) {
	return cborEncMode.Marshal(value)
}

func (c CBOR) Unmarshal(data []byte) (interface{}, error) {
	var ret interface{}
	if err := cborDecMode.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
