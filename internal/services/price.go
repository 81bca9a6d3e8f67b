package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/feetracker-io/wallet-fee-tracker/internal/fees"
	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/metrics"
	"github.com/feetracker-io/wallet-fee-tracker/internal/utils/poller"
)

const usdDecimals = 2

// USDValues are the fee displays converted with the latest polled price. They are
// informational and never feed back into the aggregation.
type USDValues struct {
	Price         string  `json:"price"`
	TotalFee      string  `json:"total_fee"`
	AvgFee        string  `json:"avg_fee"`
	MonthlyAvgFee *string `json:"monthly_avg_fee,omitempty"`
}

// RunPricePoller refreshes the usd price until ctx is done. It returns immediately when
// price lookups are not configured.
func (s *Service) RunPricePoller(ctx context.Context) {
	if s.price == nil {
		log.Ctx(ctx).Info().Msg("price lookups not configured, usd values disabled")
		return
	}

	pricePoller := poller.NewPoller(
		"price",
		s.cfg.Poller.PricePollingInterval,
		metrics.RecordPollerDuration("price", s.refreshUSDPrice),
	)
	pricePoller.Start(ctx)
}

func (s *Service) refreshUSDPrice(ctx context.Context) error {
	price, err := s.price.GetUSDPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh usd price: %w", err)
	}
	if price <= 0 {
		return fmt.Errorf("ignoring non positive usd price %v", price)
	}

	d := decimal.NewFromFloat(price)
	s.priceMu.Lock()
	s.usdPrice = &d
	s.priceMu.Unlock()

	metrics.RecordUSDPrice(price)
	log.Ctx(ctx).Debug().Float64("usd_price", price).Msg("usd price refreshed")
	return nil
}

func (s *Service) currentUSDPrice() *decimal.Decimal {
	s.priceMu.RLock()
	defer s.priceMu.RUnlock()
	return s.usdPrice
}

func (s *Service) usdValues(result *fees.Result) *USDValues {
	price := s.currentUSDPrice()
	if price == nil || result == nil {
		return nil
	}

	total := decimal.Zero
	if !result.TotalFeeUnits.IsNil() {
		total = decimal.NewFromBigInt(result.TotalFeeUnits.BigInt(), -int32(fees.NativeDecimals))
	}
	values := &USDValues{
		Price:    price.String(),
		TotalFee: total.Mul(*price).StringFixed(usdDecimals),
		AvgFee:   displayToUSD(result.AvgFeeDisplay, *price),
	}
	if result.MonthlyAvgFeeDisplay != nil {
		monthly := displayToUSD(*result.MonthlyAvgFeeDisplay, *price)
		values.MonthlyAvgFee = &monthly
	}
	return values
}

func displayToUSD(display string, price decimal.Decimal) string {
	d, err := decimal.NewFromString(display)
	if err != nil {
		return ""
	}
	return d.Mul(price).StringFixed(usdDecimals)
}
