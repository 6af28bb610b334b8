// Package ibcgrpc serves the committed IBC state of a chain over gRPC.
//
// No protobuf code generation is involved: requests and responses are plain
// structs carried by an rlp codec, the same encoding the store uses for
// connection and channel ends.
package ibcgrpc

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"google.golang.org/grpc/encoding"
)

const codecName = "rlp"

// Codec implements grpc/encoding.Codec with rlp.
type Codec struct{}

func (Codec) Marshal(v interface{}) ([]byte, error) {
	bz, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, errors.Wrap(err, "rlp marshal")
	}
	return bz, nil
}

func (Codec) Unmarshal(data []byte, v interface{}) error {
	if err := rlp.DecodeBytes(data, v); err != nil {
		return errors.Wrap(err, "rlp unmarshal")
	}
	return nil
}

func (Codec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(Codec{})
}
