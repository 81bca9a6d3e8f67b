package fees

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

// values below this are unix seconds, everything else is unix milliseconds
const secondsThreshold = 1_000_000_000_000

const microsecondsField = "microseconds_since_unix_epoch"

// timestampFields are checked, in order, on the header and then on the record itself
// before falling back to scanning every key that mentions "time".
var timestampFields = []string{
	"timestamp",
	"block_timestamp",
	"timestamp_ms",
	"confirmed_at",
	"time",
}

// ExtractTimestampMs returns the best effort unix millisecond timestamp of a record.
func ExtractTimestampMs(record types.LedgerRecord) (int64, bool) {
	header := record.Header()
	objects := []map[string]any{header, record}

	for _, obj := range objects {
		for _, field := range timestampFields {
			value, ok := obj[field]
			if !ok {
				continue
			}
			if ms, ok := parseTimestamp(value); ok {
				return ms, true
			}
		}
	}

	for _, obj := range []map[string]any{record, header} {
		for _, key := range sortedKeys(obj) {
			if !strings.Contains(strings.ToLower(key), "time") {
				continue
			}
			if ms, ok := parseTimestamp(obj[key]); ok {
				return ms, true
			}
		}
	}

	return 0, false
}

func parseTimestamp(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		return parseNumericTimestamp(v.String())
	case float64:
		return normalizeEpoch(v)
	case int64:
		return normalizeEpoch(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if ms, ok := parseNumericTimestamp(s); ok {
			return ms, true
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return 0, false
		}
		return t.UnixMilli(), true
	case map[string]any:
		micros, ok := v[microsecondsField]
		if !ok {
			return 0, false
		}
		us, ok := parseInteger(micros)
		if !ok || us <= 0 {
			return 0, false
		}
		return us / 1000, true
	default:
		return 0, false
	}
}

func parseNumericTimestamp(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 {
			return 0, false
		}
		if n < secondsThreshold {
			return n * 1000, true
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return normalizeEpoch(f)
}

func normalizeEpoch(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > math.MaxInt64/1000 {
		return 0, false
	}
	if f < secondsThreshold {
		return int64(f * 1000), true
	}
	return int64(f), true
}

func parseInteger(value any) (int64, bool) {
	var s string
	switch v := value.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
