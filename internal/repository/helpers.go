package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// extractQueryResults extracts the result array from a SurrealDB response
func extractQueryResults(result interface{}) ([]interface{}, bool) {
	if results, ok := result.([]interface{}); ok {
		if len(results) > 0 {
			if firstResult, ok := results[0].(map[string]interface{}); ok {
				if resultArray, ok := firstResult["result"].([]interface{}); ok {
					return resultArray, true
				}
			}
			// Direct array format
			return results, true
		}
	}
	return nil, false
}

// asRecordMap normalizes a single query result into a string-keyed map.
// The driver hands back map[string]interface{} for JSON transports and
// map[interface{}]interface{} for CBOR; both are accepted.
func asRecordMap(result interface{}) (map[string]interface{}, bool) {
	switch m := result.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	}
	return nil, false
}

// decodeRecord converts a raw record map into the target document type via
// a JSON round trip. Type mismatches in the stored document (a string
// balance, a non-integer group key) surface here as decode errors.
func decodeRecord(record map[string]interface{}, out interface{}) error {
	// The id field is a RecordID, not part of the document body.
	clean := make(map[string]interface{}, len(record))
	for k, v := range record {
		if k == "id" {
			continue
		}
		clean[k] = v
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// numberValue coerces the numeric types the driver may hand back
func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// stringValue extracts a string field, tolerating RecordID values
func stringValue(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case models.RecordID:
		return s.String(), true
	case *models.RecordID:
		if s != nil {
			return s.String(), true
		}
	}
	return "", false
}
