package directory

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"

	"github.com/ecomove/routeplanner/pkg/datastructure"
)

func encodeLocation(loc datastructure.Location) ([]byte, error) {
	bb, err := binary.Marshal(loc)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeLocation(bbCompressed []byte) (datastructure.Location, error) {
	var loc datastructure.Location
	bb, err := decompress(bbCompressed)
	if err != nil {
		return loc, err
	}
	err = binary.Unmarshal(bb, &loc)
	return loc, err
}

func encodeCodes(codes []string) ([]byte, error) {
	bb, err := binary.Marshal(codes)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeCodes(bbCompressed []byte) ([]string, error) {
	var codes []string
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	err = binary.Unmarshal(bb, &codes)
	return codes, err
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}
