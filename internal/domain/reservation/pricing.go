package reservation

import (
	"parkdesk/internal/domain/spot"

	"github.com/shopspring/decimal"
)

type PriceCalculator interface {
	TotalAmount(zone spot.Zone, window TimeWindow) decimal.Decimal
}

// RateTable prices a reservation as hourly rate × billed hours.
type RateTable struct {
	rates map[spot.Zone]decimal.Decimal
}

func NewDefaultRateTable() *RateTable {
	return &RateTable{
		rates: map[spot.Zone]decimal.Decimal{
			spot.ZoneRegular: decimal.NewFromInt(10000),
			spot.ZoneVIP:     decimal.NewFromInt(25000),
		},
	}
}

func NewRateTable(rates map[spot.Zone]decimal.Decimal) *RateTable {
	copied := make(map[spot.Zone]decimal.Decimal, len(rates))
	for z, r := range rates {
		copied[z] = r
	}
	return &RateTable{rates: copied}
}

func (t *RateTable) RatePerHour(zone spot.Zone) decimal.Decimal {
	return t.rates[zone]
}

func (t *RateTable) TotalAmount(zone spot.Zone, window TimeWindow) decimal.Decimal {
	return t.rates[zone].Mul(decimal.NewFromInt(window.BilledHours()))
}
