package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/golang/snappy"
	jsoniter "github.com/json-iterator/go"

	"github.com/llehouerou/shelf/internal/library"
)

// IndexSchemaVersion is written in every blob header. Blobs of another
// version are reported as corrupt so the index gets rebuilt.
const IndexSchemaVersion uint16 = library.IndexVersion

var (
	blobMagic = []byte("SHLF")

	errBadMagic = errors.New("bad magic")
	errShort    = errors.New("blob too short")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

const headerSize = 6 // magic + uint16 version

// encodeBlob wraps v as magic, version, snappy(JSON).
func encodeBlob(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, headerSize, headerSize+snappy.MaxEncodedLen(len(payload)))
	copy(buf, blobMagic)
	binary.BigEndian.PutUint16(buf[4:], IndexSchemaVersion)
	return append(buf, snappy.Encode(nil, payload)...), nil
}

// decodeBlob validates the envelope and unmarshals the payload into v.
func decodeBlob(blob []byte, v any) error {
	if len(blob) < headerSize {
		return errShort
	}
	if !bytes.Equal(blob[:4], blobMagic) {
		return errBadMagic
	}
	if version := binary.BigEndian.Uint16(blob[4:headerSize]); version != IndexSchemaVersion {
		return fmt.Errorf("schema version %d, want %d", version, IndexSchemaVersion)
	}

	payload, err := snappy.Decode(nil, blob[headerSize:])
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func encodeIndex(idx *library.Index) ([]byte, error) {
	return encodeBlob(idx)
}

func decodeIndex(blob []byte) (*library.Index, error) {
	var idx library.Index
	if err := decodeBlob(blob, &idx); err != nil {
		return nil, err
	}
	if err := idx.Restore(); err != nil {
		return nil, err
	}
	return &idx, nil
}
