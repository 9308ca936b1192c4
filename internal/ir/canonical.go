package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for hashing.
// CRITICAL: This is the ONLY serialization that should be used for
// content-addressed identity of states.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units (RFC 8785)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings (and therefore Item IDs) are NFC normalized
//  4. Floats and null are rejected
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return writeCanonicalString(buf, val)
	case Item:
		return writeCanonicalString(buf, string(val))
	case Status:
		return writeCanonicalString(buf, string(val))
	case Decision:
		return writeCanonicalString(buf, string(val))
	case int:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case int64:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Group:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = item
		}
		return writeCanonicalArray(buf, arr)
	case []Group:
		arr := make([]any, len(val))
		for i, g := range val {
			arr[i] = g
		}
		return writeCanonicalArray(buf, arr)
	case []any:
		return writeCanonicalArray(buf, val)
	case map[string]any:
		return writeCanonicalObject(buf, val)
	case float64, float32:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// writeCanonicalString writes a JSON string with NFC normalization and
// without HTML escaping.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false) // CRITICAL: <, >, & must NOT be escaped
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	// json.Encoder adds a trailing newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

func writeCanonicalArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonical(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, obj[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required by
// RFC 8785. Go's native string comparison orders by UTF-8 bytes, which
// differs for characters outside the BMP.
func compareKeysRFC8785(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// CanonicalState converts a SortState into the generic tree accepted by
// MarshalCanonical. Absent fields (status while paused, mergeState at the
// end, run snapshots before a merge starts) are left out, matching the
// JSON shape.
func CanonicalState(s SortState) map[string]any {
	obj := map[string]any{
		"arr":         nonNilGroups(s.Arr),
		"currentSize": s.CurrentSize,
		"leftStart":   s.LeftStart,
	}
	if s.Status != StatusPaused {
		obj["status"] = s.Status
	}
	if m := s.MergeState; m != nil {
		ms := map[string]any{
			"start": m.Start,
			"mid":   m.Mid,
			"end":   m.End,
		}
		if m.Started() {
			ms["leftArr"] = nonNilGroups(m.LeftArr)
			ms["rightArr"] = nonNilGroups(m.RightArr)
			ms["leftArrIdx"] = m.LeftArrIdx
			ms["rightArrIdx"] = m.RightArrIdx
			ms["arrIdx"] = m.ArrIdx
		}
		obj["mergeState"] = ms
	}
	return obj
}

func nonNilGroups(groups []Group) []Group {
	if groups == nil {
		return []Group{}
	}
	return groups
}
