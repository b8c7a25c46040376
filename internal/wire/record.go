// Package wire implements the byte layouts shared by combined public keys,
// combined signatures, combined ciphertexts and seeds.
//
// A combined value is a concatenation of records:
//
//	[scheme id: 1][config id: 1][length: PrefixWidth, LE, variable only][payload]
//
// Decoding is strict: every byte must belong to a complete record, and a
// descriptor may appear at most once.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/vaultsandbox/hybrid-go/scheme"
)

// headerSize is the id and config bytes that start every record.
const headerSize = 2

// Record is one per-algorithm element of a combined value.
type Record struct {
	Descriptor scheme.Descriptor
	Payload    []byte
}

// SizeFunc returns the encoded size of the payload that follows d.
// The boolean is false when d is not registered.
type SizeFunc func(d scheme.Descriptor) (scheme.SizeInfo, bool)

// AppendRecord appends the encoding of rec to dst.
func AppendRecord(dst []byte, rec Record, size scheme.SizeInfo) ([]byte, error) {
	n := len(rec.Payload)
	switch size.Kind {
	case scheme.Fixed:
		if n != size.Fixed {
			return dst, fmt.Errorf("%w: %s payload is %d bytes, want %d",
				scheme.ErrMalformedEncoding, rec.Descriptor, n, size.Fixed)
		}
		dst = append(dst, rec.Descriptor.ID, rec.Descriptor.Config)
	case scheme.Variable:
		if err := size.Validate(); err != nil {
			return dst, err
		}
		if uint64(n) > size.MaxLength() {
			return dst, fmt.Errorf("%w: %s payload of %d bytes does not fit a %d-byte prefix",
				scheme.ErrMalformedEncoding, rec.Descriptor, n, size.PrefixWidth)
		}
		dst = append(dst, rec.Descriptor.ID, rec.Descriptor.Config)
		dst = appendLength(dst, uint64(n), size.PrefixWidth)
	default:
		return dst, fmt.Errorf("%w: unknown size kind %d", scheme.ErrInvalidSizeInfo, size.Kind)
	}
	return append(dst, rec.Payload...), nil
}

// appendLength writes the low width bytes of n in little-endian order.
func appendLength(dst []byte, n uint64, width int) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	return append(dst, buf[:width]...)
}

// readLength reads a width-byte little-endian length.
func readLength(b []byte) uint64 {
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:])
}

// DecodeRecords splits buf into records. Payload slices alias buf.
func DecodeRecords(buf []byte, purpose scheme.Purpose, sizeOf SizeFunc) ([]Record, error) {
	if len(buf) == 0 {
		return nil, &scheme.EncodingError{Purpose: purpose, Reason: "empty encoding"}
	}

	var (
		records []Record
		seen    = make(map[scheme.Descriptor]struct{})
		off     int
	)

	for off < len(buf) {
		start := off
		if len(buf)-off < headerSize {
			return nil, &scheme.EncodingError{Purpose: purpose, Offset: start, Reason: "truncated record header"}
		}
		d := scheme.Descriptor{ID: buf[off], Config: buf[off+1]}
		off += headerSize

		size, ok := sizeOf(d)
		if !ok {
			return nil, &scheme.EncodingError{
				Purpose: purpose,
				Offset:  start,
				Reason:  "unresolved descriptor",
				Err:     &scheme.UnknownAlgorithmError{Purpose: purpose, Descriptor: d},
			}
		}
		if _, dup := seen[d]; dup {
			return nil, &scheme.EncodingError{
				Purpose: purpose,
				Offset:  start,
				Reason:  fmt.Sprintf("descriptor %s repeated", d),
				Err:     scheme.ErrDuplicateScheme,
			}
		}
		seen[d] = struct{}{}

		var n uint64
		switch size.Kind {
		case scheme.Fixed:
			n = uint64(size.Fixed)
		case scheme.Variable:
			if len(buf)-off < size.PrefixWidth {
				return nil, &scheme.EncodingError{Purpose: purpose, Offset: off, Reason: "truncated length prefix"}
			}
			n = readLength(buf[off : off+size.PrefixWidth])
			off += size.PrefixWidth
			if n == 0 {
				return nil, &scheme.EncodingError{Purpose: purpose, Offset: off, Reason: "zero-length payload"}
			}
		default:
			return nil, &scheme.EncodingError{Purpose: purpose, Offset: start, Reason: "invalid size info", Err: scheme.ErrInvalidSizeInfo}
		}

		if n > uint64(len(buf)-off) {
			return nil, &scheme.EncodingError{
				Purpose: purpose,
				Offset:  off,
				Reason:  fmt.Sprintf("payload of %d bytes exceeds remaining %d", n, len(buf)-off),
			}
		}
		records = append(records, Record{Descriptor: d, Payload: buf[off : off+int(n)]})
		off += int(n)
	}

	return records, nil
}

// Index maps each record's descriptor to its payload.
func Index(records []Record) map[scheme.Descriptor][]byte {
	m := make(map[scheme.Descriptor][]byte, len(records))
	for _, r := range records {
		m[r.Descriptor] = r.Payload
	}
	return m
}

// Descriptors returns the descriptors of records in wire order.
func Descriptors(records []Record) []scheme.Descriptor {
	out := make([]scheme.Descriptor, len(records))
	for i, r := range records {
		out[i] = r.Descriptor
	}
	return out
}
