package engine

import "encoding/binary"

// RecordSize is the fixed, packed, little-endian wire size of a sample
// record in bytes.
const RecordSize = 16

const (
	// FlagNewSample is always set on a successful read.
	FlagNewSample uint32 = 1 << 0
	// FlagThresholdCrossed is set when the reading is at or above the
	// threshold at the moment of materialization.
	FlagThresholdCrossed uint32 = 1 << 1
)

// Record is the decoded form of the 16-byte sample record handed to a
// consumer on a successful read.
type Record struct {
	TimestampNS uint64
	TempMC      int32
	Flags       uint32
}

// Encode writes the packed little-endian representation of r into buf,
// which must be at least RecordSize bytes.
func (r Record) Encode(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], r.TimestampNS)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(r.TempMC))
	binary.LittleEndian.PutUint32(buf[12:16], r.Flags)
}

// Bytes returns the packed little-endian encoding of r as a new slice.
func (r Record) Bytes() []byte {
	buf := make([]byte, RecordSize)
	r.Encode(buf)
	return buf
}

// DecodeRecord parses a packed little-endian sample record from buf, which
// must be at least RecordSize bytes.
func DecodeRecord(buf []byte) Record {
	return Record{
		TimestampNS: binary.LittleEndian.Uint64(buf[0:8]),
		TempMC:      int32(binary.LittleEndian.Uint32(buf[8:12])),
		Flags:       binary.LittleEndian.Uint32(buf[12:16]),
	}
}
