// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"bytes"
	"context"
	"encoding/json"
)

// maxFragment bounds how much of the lvm output is copied into errors.
const maxFragment = 512

// query runs an lvm reporting command and decodes every element of
// report[0][key] into T. Elements are returned in the order lvm printed them.
func query[T any](ctx context.Context, c *Client, subcommand, key string, args ...string) ([]T, error) {
	output, err := c.run(ctx, subcommand, args...)
	if err != nil {
		return nil, err
	}
	return unwrapReport[T](output, key)
}

// unwrapReport extracts the records under /report/0/<key>. An empty key
// decodes the whole output as a single JSON string value, which is how
// commands without a report are handled.
//
// Decoding is all or nothing: the first element that does not decode fails
// the whole call.
func unwrapReport[T any](output []byte, key string) ([]T, error) {
	if key == "" {
		wrapped, err := json.Marshal(string(output))
		if err != nil {
			return nil, &MalformedOutputError{Cause: "could not decode wrapped type as JSON", Fragment: fragment(output), Err: err}
		}
		var v T
		if err := json.Unmarshal(wrapped, &v); err != nil {
			return nil, &MalformedOutputError{Cause: "could not decode wrapped type as JSON", Fragment: fragment(output), Err: err}
		}
		return []T{v}, nil
	}

	var doc json.RawMessage
	if err := json.Unmarshal(output, &doc); err != nil {
		return nil, &MalformedOutputError{Cause: "could not decode JSON output", Fragment: fragment(output), Err: err}
	}

	report, ok := objectField(doc, "report")
	if ok {
		report, ok = arrayIndex(report, 0)
	}
	if ok {
		report, ok = objectField(report, key)
	}
	if !ok {
		return nil, &MalformedOutputError{Cause: "wrapping is in the wrong format", Fragment: fragment(output)}
	}

	elems, ok := asArray(report)
	if !ok {
		return nil, &MalformedOutputError{Cause: "wrapped value is not an array", Fragment: fragment(report)}
	}

	records := make([]T, 0, len(elems))
	for _, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			return nil, &MalformedOutputError{Cause: "could not decode wrapped type as JSON", Fragment: fragment(elem), Err: err}
		}
		records = append(records, v)
	}
	return records, nil
}

func isKind(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}

func objectField(raw json.RawMessage, name string) (json.RawMessage, bool) {
	if !isKind(raw, '{') {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	v, ok := obj[name]
	return v, ok
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if !isKind(raw, '[') {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

func arrayIndex(raw json.RawMessage, i int) (json.RawMessage, bool) {
	arr, ok := asArray(raw)
	if !ok || i >= len(arr) {
		return nil, false
	}
	return arr[i], true
}

func fragment(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) > maxFragment {
		return string(b[:maxFragment]) + "..."
	}
	return string(b)
}
