package ledgerclient

import (
	"context"

	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

//go:generate mockery --name=LedgerInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_ledger_client.go
type LedgerInterface interface {
	// GetAccountTransactions returns up to count records of the account history starting at cursor start.
	GetAccountTransactions(ctx context.Context, address string, count uint64, start string) (*types.TransactionsPage, error)
	// GetAccountBalance returns the account's native token balance as a decimal string.
	GetAccountBalance(ctx context.Context, address string) (string, error)
}
