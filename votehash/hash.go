// Package votehash provides deterministic hashing for blocks and the raw
// SHA-256 primitive the rest of the ledger builds on.
//
// A systems-language rewrite of this ledger must pin JSON key ordering for
// hash inputs, or proof-of-work and chain hashes diverge across platforms
// and even across runs on the same platform (Go map iteration order is
// randomized). CanonicalJSON below is that pin: it walks whatever
// encoding/json produces, sorts object keys, and renders integral float64
// values as plain integers so that a large whole number such as a
// timestamp round-trips as 1700000000 rather than in exponent form
// (1.7e+09).
package votehash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/equa/votenode/block"
)

// HashString256 returns the lowercase hex SHA-256 digest of data.
func HashString256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashBlock returns the hex SHA-256 digest of the block's canonical JSON
// form: keys sorted, votes expanded to their full field dictionaries
// (including signature — unlike the proof-of-work input, which excludes
// it). This is the hash stored as the next block's previous_hash.
func HashBlock(b *block.Block) (string, error) {
	canon, err := CanonicalJSON(b)
	if err != nil {
		return "", err
	}
	return HashString256(canon), nil
}

// CanonicalJSON marshals v through encoding/json and then re-renders it
// with object keys in sorted order and whole-number floats printed without
// a fractional part, so the same value always serializes identically
// regardless of Go's (or any future caller's) map iteration order.
func CanonicalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	encodeCanonical(&buf, generic)
	return buf.Bytes(), nil
}

func encodeCanonical(buf *bytes.Buffer, v interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			buf.Write(kb)
			buf.WriteByte(':')
			encodeCanonical(buf, t[k])
		}
		buf.WriteByte('}')
	case []interface{}:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeCanonical(buf, e)
		}
		buf.WriteByte(']')
	case string:
		sb, _ := json.Marshal(t)
		buf.Write(sb)
	case float64:
		buf.WriteString(formatNumber(t))
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	}
}

// formatNumber renders whole-valued floats (the only numeric type
// encoding/json produces when unmarshaling into interface{}) as plain
// integers, matching the design note's "integer-as-integer" requirement.
func formatNumber(f float64) string {
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
