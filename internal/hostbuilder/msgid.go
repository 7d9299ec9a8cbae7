package hostbuilder

import (
	"crypto/sha256"

	"github.com/golang/snappy"
	pb "github.com/libp2p/go-libp2p-pubsub/pb"
)

var (
	validSnappyDomain   = []byte("MESSAGE_DOMAIN_VALID_SNAPPY")
	invalidSnappyDomain = []byte("MESSAGE_DOMAIN_INVALID_SNAPPY")
)

func msgIDFn(pmsg *pb.Message) string {
	data := pmsg.Data
	var sum [32]byte
	h := sha256.New()
	if dec, err := snappy.Decode(nil, data); err == nil {
		h.Write(validSnappyDomain)
		h.Write(dec)
	} else {
		h.Write(invalidSnappyDomain)
		h.Write(data)
	}
	copy(sum[:], h.Sum(nil))
	return string(sum[:20])
}
