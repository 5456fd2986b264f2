package backend

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/painelfin/painelgo/internal/models"
)

// unmarshalBody decodes a success body into a fixed shape.
func unmarshalBody(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// rawItem is one backend record before normalization. Field access goes
// through the first-present-alias helpers below, because the backend is not
// consistent between snake_case and camelCase.
type rawItem map[string]any

// unwrapList locates the payload array in a response body. Wrapper keys are
// tried in the given priority order; a bare top-level array is accepted as a
// fallback. An object body with none of the keys is a hard failure.
func unwrapList(data []byte, keys ...string) ([]rawItem, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	switch v := probe.(type) {
	case []any:
		return toItems(v)
	case map[string]any:
		for _, k := range keys {
			if arr, ok := v[k].([]any); ok {
				return toItems(arr)
			}
		}
		return nil, fmt.Errorf("payload has none of the expected keys %v", keys)
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("payload is neither an object nor an array")
	}
}

// unwrapObject locates a single payload object, by wrapper key or as the
// body itself.
func unwrapObject(data []byte, keys ...string) (rawItem, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	obj, ok := probe.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload is not an object")
	}
	for _, k := range keys {
		if inner, ok := obj[k].(map[string]any); ok {
			return rawItem(inner), nil
		}
	}
	return rawItem(obj), nil
}

func toItems(arr []any) ([]rawItem, error) {
	items := make([]rawItem, 0, len(arr))
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("payload entry is not an object")
		}
		items = append(items, rawItem(m))
	}
	return items, nil
}

// firstString returns the first present, non-empty alias as a string.
func (it rawItem) firstString(keys ...string) string {
	for _, k := range keys {
		switch v := it[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// stringOr is firstString with an explicit fallback value.
func (it rawItem) stringOr(fallback string, keys ...string) string {
	if s := it.firstString(keys...); s != "" {
		return s
	}
	return fallback
}

// intID reads a numeric ID that may arrive as a number or numeric string.
func (it rawItem) intID(keys ...string) int64 {
	for _, k := range keys {
		switch v := it[k].(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// stringID coerces an ID of either wire type to a string.
func (it rawItem) stringID(keys ...string) string {
	for _, k := range keys {
		switch v := it[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// firstDecimal reads the first alias that holds a number or numeric string;
// anything else yields zero.
func (it rawItem) firstDecimal(keys ...string) decimal.Decimal {
	for _, k := range keys {
		switch v := it[k].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

// metric reads a stock-guide figure, preserving the "n.a." sentinel for
// values that are present but not numeric.
func (it rawItem) metric(keys ...string) models.Metric {
	for _, k := range keys {
		switch v := it[k].(type) {
		case float64:
			return models.MetricFrom(decimal.NewFromFloat(v))
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
				return models.MetricFrom(d)
			}
			return models.MetricNA()
		}
	}
	return models.MetricNA()
}

// stringSlice reads a []string field, tolerating mixed []any payloads.
func (it rawItem) stringSlice(keys ...string) []string {
	for _, k := range keys {
		arr, ok := it[k].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, el := range arr {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// items reads a nested array-of-objects field; entries that are not objects
// are skipped.
func (it rawItem) items(keys ...string) []rawItem {
	for _, k := range keys {
		arr, ok := it[k].([]any)
		if !ok {
			continue
		}
		out := make([]rawItem, 0, len(arr))
		for _, el := range arr {
			if m, ok := el.(map[string]any); ok {
				out = append(out, rawItem(m))
			}
		}
		return out
	}
	return nil
}

// object reads a nested object field.
func (it rawItem) object(keys ...string) rawItem {
	for _, k := range keys {
		if m, ok := it[k].(map[string]any); ok {
			return rawItem(m)
		}
	}
	return nil
}

// floatPtr reads an optional numeric field, nil when absent or null.
func (it rawItem) floatPtr(keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := it[k].(float64); ok {
			f := v
			return &f
		}
	}
	return nil
}
