package e2etest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

// FakeLedger serves a fixed account history through the paginated ledger rpc.
type FakeLedger struct {
	history             []map[string]any
	balance             string
	transactionRequests atomic.Int64
}

// NewFakeLedger builds n records, each paying 100 * 10 base units, evenly spread over span.
func NewFakeLedger(n int, start time.Time, span time.Duration, balance string) *FakeLedger {
	history := make([]map[string]any, n)
	for i := range history {
		ts := start
		if n > 1 {
			ts = start.Add(span * time.Duration(i) / time.Duration(n-1))
		}
		history[i] = map[string]any{
			"hash": fmt.Sprintf("0x%064x", i),
			"header": map[string]any{
				"gas_unit_price": "100",
				"max_gas_amount": "10",
				"timestamp": map[string]any{
					"microseconds_since_unix_epoch": strconv.FormatInt(ts.UnixMicro(), 10),
					"utc_date_time":                 ts.UTC().Format(time.RFC3339),
				},
			},
		}
	}

	return &FakeLedger{history: history, balance: balance}
}

func (l *FakeLedger) TransactionRequests() int64 {
	return l.transactionRequests.Load()
}

func (l *FakeLedger) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/accounts/{address}/transactions", l.transactions)
	r.Get("/accounts/{address}/balance", l.accountBalance)
	return r
}

func (l *FakeLedger) transactions(w http.ResponseWriter, r *http.Request) {
	l.transactionRequests.Add(1)

	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count <= 0 {
		http.Error(w, "invalid count", http.StatusBadRequest)
		return
	}
	start, err := strconv.Atoi(r.URL.Query().Get("start"))
	if err != nil || start < 0 {
		http.Error(w, "invalid start", http.StatusBadRequest)
		return
	}

	start = min(start, len(l.history))
	end := min(start+count, len(l.history))

	writeJSON(w, map[string]any{
		"record": l.history[start:end],
		"cursor": strconv.Itoa(end),
	})
}

func (l *FakeLedger) accountBalance(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"balance": l.balance})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
