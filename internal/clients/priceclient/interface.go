package priceclient

import "context"

//go:generate mockery --name=PriceInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_price_client.go
type PriceInterface interface {
	GetUSDPrice(ctx context.Context) (float64, error)
}
