package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus counters. One instance is created at
// app wiring and shared by the services that record into it.
type Metrics struct {
	OrdersSettled        prometheus.Counter
	ConsumptionsComputed prometheus.Counter
	MissingIngredients   prometheus.Counter
	CatalogSyncs         prometheus.Counter
	LowStockAlerts       prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		OrdersSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brewstock_orders_settled_total",
			Help: "Orders settled through the payment webhook.",
		}),
		ConsumptionsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brewstock_consumptions_computed_total",
			Help: "Sale lines run through the consumption engine.",
		}),
		MissingIngredients: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brewstock_missing_ingredient_lines_total",
			Help: "Recipe lines that failed to match or convert.",
		}),
		CatalogSyncs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brewstock_catalog_syncs_total",
			Help: "Catalog synchronizations against the commerce provider.",
		}),
		LowStockAlerts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brewstock_low_stock_alerts_total",
			Help: "Low stock alert emails sent.",
		}),
	}
}
