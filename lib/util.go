package lib

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// MarshalJSON() is a json.Marshal wrapper that returns an ErrorI
func MarshalJSON(message any) ([]byte, ErrorI) {
	bz, err := json.Marshal(message)
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// MarshalJSONIndent() is a json.MarshalIndent wrapper that returns an ErrorI
func MarshalJSONIndent(message any) ([]byte, ErrorI) {
	bz, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// MarshalJSONIndentString() returns the indented json of a message as a string
func MarshalJSONIndentString(message any) (string, ErrorI) {
	bz, err := MarshalJSONIndent(message)
	return string(bz), err
}

// UnmarshalJSON() is a json.Unmarshal wrapper that returns an ErrorI
func UnmarshalJSON(bz []byte, ptr any) ErrorI {
	if err := json.Unmarshal(bz, ptr); err != nil {
		return ErrJSONUnmarshal(err)
	}
	return nil
}

// SaveJSONToFile() saves the json of an object to a file in the data directory
func SaveJSONToFile(j any, dataDirPath, filePath string) (err ErrorI) {
	bz, err := MarshalJSONIndent(j)
	if err != nil {
		return
	}
	if e := os.WriteFile(filepath.Join(dataDirPath, filePath), bz, os.ModePerm); e != nil {
		return ErrWriteFile(e)
	}
	return
}

// BytesToString() converts bytes to a hex string
func BytesToString(b []byte) string {
	return hex.EncodeToString(b)
}

// StringToBytes() converts a hex string (with or without a 0x prefix) to bytes
func StringToBytes(s string) ([]byte, ErrorI) {
	bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, ErrStringToBytes(err)
	}
	return bz, nil
}

// HexBytes is a byte slice that marshals to and from 0x prefixed hex in json
type HexBytes []byte

// NewHexBytesFromString() creates HexBytes from a hex string
func NewHexBytesFromString(s string) (HexBytes, ErrorI) {
	bz, err := StringToBytes(s)
	if err != nil {
		return nil, err
	}
	return bz, nil
}

// String() returns the 0x prefixed hex representation
func (x HexBytes) String() string {
	return "0x" + BytesToString(x)
}

// MarshalJSON() satisfies the json.Marshaller interface
func (x HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON() satisfies the json.Unmarshaler interface
func (x *HexBytes) UnmarshalJSON(b []byte) (err error) {
	var s string
	if err = json.Unmarshal(b, &s); err != nil {
		return err
	}
	*x, err = NewHexBytesFromString(s)
	return
}

// ParseAmount() parses a base 10 integer amount string (ex. token base units)
func ParseAmount(s string) (*big.Int, ErrorI) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || amount.Sign() < 0 {
		return nil, ErrInvalidAmountString(s)
	}
	return amount, nil
}

// CatchPanic() catches any panic in the function call or child function calls
func CatchPanic(l LoggerI) {
	if r := recover(); r != nil {
		l.Error(string(debug.Stack()))
	}
}

// JoinLenPrefix() appends the items together separated by a single byte to represent the length of the segment
func JoinLenPrefix(toAppend ...[]byte) (res []byte) {
	// for each item to append
	for _, item := range toAppend {
		if item == nil {
			continue
		}
		// store the length of the segment in a single byte
		length := []byte{byte(len(item))}
		// append to the reset of the segment
		res = append(append(res, length...), item...)
	}
	return
}

// DecodeLengthPrefixed() decodes a key that is delimited by the length of the segment in a single byte
func DecodeLengthPrefixed(key []byte) (segments [][]byte) {
	var length int
	for i := 0; i < len(key); i += length {
		// read the length prefix
		length = int(key[i])
		i++
		if i+length > len(key) {
			panic("corrupt or incomplete key")
		}
		segments = append(segments, key[i:i+length])
	}
	return
}

// Append() concatenates two byte slices without aliasing either of them
func Append(a, b []byte) []byte {
	res := make([]byte, 0, len(a)+len(b))
	return append(append(res, a...), b...)
}

// Uint64ToBytes() encodes an uint64 big endian so keys sort in numerical order
func Uint64ToBytes(u uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, u)
	return b
}

// BytesToUint64() decodes a big endian uint64; nil decodes as zero
func BytesToUint64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
