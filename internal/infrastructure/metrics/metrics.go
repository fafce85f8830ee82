package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DeliveryMetrics — счётчики доставки сделок.
type DeliveryMetrics struct {
	DeliveriesTotal        *prometheus.CounterVec
	DealCardsTotal         prometheus.Counter
	ChannelRecoveriesTotal prometheus.Counter
	DealsFetchedTotal      *prometheus.CounterVec
}

func NewDeliveryMetrics(reg prometheus.Registerer) *DeliveryMetrics {
	factory := promauto.With(reg)

	return &DeliveryMetrics{
		DeliveriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "deals_bot_deliveries_total",
			Help: "Guild deliveries by outcome.",
		}, []string{"outcome"}),
		DealCardsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "deals_bot_deal_cards_total",
			Help: "Deal cards posted to channels.",
		}),
		ChannelRecoveriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "deals_bot_channel_recoveries_total",
			Help: "Channels recreated after going missing on the platform.",
		}),
		DealsFetchedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "deals_bot_deals_fetched_total",
			Help: "Deals fetched from the upstream API by store.",
		}, []string{"store"}),
	}
}
