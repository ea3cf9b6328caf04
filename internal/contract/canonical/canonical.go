// Package canonical produces the deterministic byte encoding that every peer
// hashes and persists. Two independent executions given the same logical
// record must emit identical bytes: keys are sorted at every nesting level,
// timestamps use one fixed layout, and decimals never fall back to scientific
// notation. The validation document hash is derived from this encoding, so
// any drift here breaks third-party re-verification.
package canonical

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"foncier/internal/contract/models"
	derrors "foncier/pkg/domain-errors"
)

// HashAlgorithm names the digest used over canonical bytes.
const HashAlgorithm = "SHA-256"

// Marshal encodes v canonically. v is first rendered through encoding/json
// (which applies the models' fixed timestamp layout), then re-emitted with
// sorted keys and normalized number formatting.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "canonical marshal")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "canonical re-decode")
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal is the inverse of Marshal for any value encoded by it.
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "canonical unmarshal")
	}
	return nil
}

// MarshalRecord encodes a contract record for persistence.
func MarshalRecord(rec *models.ContractRecord) ([]byte, error) {
	return Marshal(rec)
}

// UnmarshalRecord decodes persisted bytes back into a record.
func UnmarshalRecord(data []byte) (*models.ContractRecord, error) {
	var rec models.ContractRecord
	if err := Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Hash returns the lowercase hex SHA-256 of the canonical encoding of v.
func Hash(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Checksum computes the content checksum of a record: the hash of the record
// with its own checksum field cleared, so the stored value never feeds back
// into itself.
func Checksum(rec *models.ContractRecord) (string, error) {
	clone := rec.Clone()
	clone.Metadata.Checksum = ""
	return Hash(clone)
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		return writeString(buf, val)
	case json.Number:
		return writeNumber(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return derrors.Newf(derrors.CodeInternal, "canonical encode: unsupported type %T", v)
	}
	return nil
}

// writeString emits a JSON string without HTML escaping, which encoding/json
// applies by default and which would make the encoding depend on encoder
// configuration.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "canonical string encode")
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// writeNumber normalizes decimal formatting. Integer literals pass through
// untouched; anything fractional or in exponent form is reformatted with
// strconv's shortest plain decimal representation.
func writeNumber(buf *bytes.Buffer, n json.Number) error {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		buf.WriteString(s)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("canonical number %q: %w", s, err)
	}
	buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
