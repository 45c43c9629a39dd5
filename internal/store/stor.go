// Package store caches generated modules keyed by a digest of their input.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
)

var ErrNotFound = errors.New("conversion not found")

type ConversionStor interface {
	GetConversionByDigest(digest string) (*Conversion, error)
	AddConversion(c *Conversion) (*Conversion, error)
	CountConversions() (int64, error)
}

// Digest identifies a conversion by its source bytes and every option that changes
// the output.
func Digest(source []byte, format string, skipUnresolved bool) string {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(skipUnresolved)))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}
