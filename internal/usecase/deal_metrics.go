package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/logizar/logizar-crm/internal/entity"
)

type DealMetrics struct {
	TotalDeals   int             `json:"total_deals"`
	WonDeals     int             `json:"won_deals"`
	PendingDeals int             `json:"pending_deals"`
	RevenueARS   decimal.Decimal `json:"revenue_ars"`
	RevenueUSD   decimal.Decimal `json:"revenue_usd"`
}

// ComputeDealMetrics se deriva del conjunto cargado en cada pedido, no
// se persiste. Sólo las oportunidades ganadas suman ingresos, cada una
// en su moneda; nunca se convierte ni se combina entre monedas.
func ComputeDealMetrics(deals []entity.Deal) DealMetrics {
	metrics := DealMetrics{
		TotalDeals: len(deals),
		RevenueARS: decimal.Zero,
		RevenueUSD: decimal.Zero,
	}

	for _, deal := range deals {
		switch deal.Status {
		case entity.DealPending:
			metrics.PendingDeals++
		case entity.DealWon:
			metrics.WonDeals++
			switch deal.Currency {
			case entity.CurrencyARS:
				metrics.RevenueARS = metrics.RevenueARS.Add(deal.TotalAmount)
			case entity.CurrencyUSD:
				metrics.RevenueUSD = metrics.RevenueUSD.Add(deal.TotalAmount)
			}
		}
	}

	return metrics
}
