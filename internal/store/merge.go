package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// mergeEntity overlays next onto prev and returns the merged JSON.
//
// Objects merge key by key, so fields the board model does not know about
// survive a round trip. Arrays whose elements carry an "id" merge element
// by element; next decides membership and order. Any other value in next
// replaces the one in prev.
func mergeEntity(prev, next json.RawMessage) (json.RawMessage, error) {
	if len(prev) == 0 {
		return next, nil
	}

	prevVal, err := decodeValue(prev)
	if err != nil {
		return nil, fmt.Errorf("decode stored entity: %w", err)
	}

	nextVal, err := decodeValue(next)
	if err != nil {
		return nil, fmt.Errorf("decode new entity: %w", err)
	}

	out, err := json.Marshal(mergeValue(prevVal, nextVal))
	if err != nil {
		return nil, fmt.Errorf("encode merged entity: %w", err)
	}

	return out, nil
}

// decodeValue decodes with UseNumber so numbers keep their exact text.
func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any

	err := dec.Decode(&v)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func mergeValue(prev, next any) any {
	switch n := next.(type) {
	case map[string]any:
		p, ok := prev.(map[string]any)
		if !ok {
			return n
		}

		out := make(map[string]any, len(p)+len(n))
		for k, v := range p {
			out[k] = v
		}

		for k, v := range n {
			out[k] = mergeValue(p[k], v)
		}

		return out
	case []any:
		p, ok := prev.([]any)
		if !ok {
			return n
		}

		byID := make(map[string]any, len(p))

		for _, elem := range p {
			if id := elementID(elem); id != "" {
				byID[id] = elem
			}
		}

		out := make([]any, 0, len(n))

		for _, elem := range n {
			if old, found := byID[elementID(elem)]; found {
				out = append(out, mergeValue(old, elem))

				continue
			}

			out = append(out, elem)
		}

		return out
	default:
		return next
	}
}

func elementID(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	id, _ := obj["id"].(string)

	return id
}
