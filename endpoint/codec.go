package endpoint

import (
	"errors"

	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"google.golang.org/protobuf/encoding/protowire"
)

/*
	Stored payloads and queue entries are persisted in the protobuf wire format:

	message Payload {
	  uint64 nonce        = 1;
	  bytes  payload      = 2;
	  bytes  payload_hash = 3;
	  bytes  dst_app      = 4;
	}
*/

const (
	fieldNonce       protowire.Number = 1
	fieldPayload     protowire.Number = 2
	fieldPayloadHash protowire.Number = 3
	fieldDstApp      protowire.Number = 4
)

// StoredPayload is the single withheld message that blocks an inbound path
type StoredPayload struct {
	Nonce       uint64         `json:"nonce"`
	Payload     lib.HexBytes   `json:"payload"`
	PayloadHash lib.HexBytes   `json:"payloadHash"`
	DstApp      crypto.Address `json:"dstApp"`
}

// QueueEntry is a message that arrived while its path was blocked
type QueueEntry struct {
	Nonce   uint64         `json:"nonce"`
	Payload lib.HexBytes   `json:"payload"`
	DstApp  crypto.Address `json:"dstApp"`
}

// ToStoredPayload() converts a queue entry into a stored payload
func (q *QueueEntry) ToStoredPayload() *StoredPayload {
	return &StoredPayload{Nonce: q.Nonce, Payload: q.Payload, PayloadHash: crypto.Hash(q.Payload), DstApp: q.DstApp}
}

// Marshal() encodes the stored payload
func (s *StoredPayload) Marshal() []byte {
	return encodePayload(s.Nonce, s.Payload, s.PayloadHash, s.DstApp)
}

// Unmarshal() decodes the stored payload
func (s *StoredPayload) Unmarshal(bz []byte) (err lib.ErrorI) {
	s.Nonce, s.Payload, s.PayloadHash, s.DstApp, err = decodePayload(bz)
	return
}

// Marshal() encodes the queue entry
func (q *QueueEntry) Marshal() []byte {
	return encodePayload(q.Nonce, q.Payload, nil, q.DstApp)
}

// Unmarshal() decodes the queue entry
func (q *QueueEntry) Unmarshal(bz []byte) (err lib.ErrorI) {
	q.Nonce, q.Payload, _, q.DstApp, err = decodePayload(bz)
	return
}

func encodePayload(nonce uint64, payload, hash []byte, dstApp crypto.Address) (bz []byte) {
	bz = protowire.AppendTag(bz, fieldNonce, protowire.VarintType)
	bz = protowire.AppendVarint(bz, nonce)
	bz = protowire.AppendTag(bz, fieldPayload, protowire.BytesType)
	bz = protowire.AppendBytes(bz, payload)
	if len(hash) != 0 {
		bz = protowire.AppendTag(bz, fieldPayloadHash, protowire.BytesType)
		bz = protowire.AppendBytes(bz, hash)
	}
	bz = protowire.AppendTag(bz, fieldDstApp, protowire.BytesType)
	return protowire.AppendBytes(bz, dstApp[:])
}

func decodePayload(bz []byte) (nonce uint64, payload, hash []byte, dstApp crypto.Address, err lib.ErrorI) {
	for len(bz) > 0 {
		// read the field tag
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return 0, nil, nil, dstApp, ErrDecodePayload(protowire.ParseError(n))
		}
		bz = bz[n:]
		switch {
		case num == fieldNonce && typ == protowire.VarintType:
			nonce, n = protowire.ConsumeVarint(bz)
		case num == fieldPayload && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(bz)
			payload = append([]byte{}, v...)
		case num == fieldPayloadHash && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(bz)
			hash = append([]byte{}, v...)
		case num == fieldDstApp && typ == protowire.BytesType:
			var v []byte
			if v, n = protowire.ConsumeBytes(bz); n >= 0 {
				if dstApp, err = crypto.NewAddressFromBytes(v); err != nil {
					return 0, nil, nil, dstApp, ErrDecodePayload(errors.New("invalid destination application"))
				}
			}
		default:
			// skip unknown fields
			n = protowire.ConsumeFieldValue(num, typ, bz)
		}
		if n < 0 {
			return 0, nil, nil, dstApp, ErrDecodePayload(protowire.ParseError(n))
		}
		bz = bz[n:]
	}
	return
}
