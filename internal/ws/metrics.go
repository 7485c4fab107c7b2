package ws

import "github.com/prometheus/client_golang/prometheus"

var (
	wsClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "todo_ws_clients",
		Help: "Currently connected websocket subscribers",
	})
	wsEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_ws_events_published_total",
			Help: "Todo change events published to the hub",
		},
		[]string{"type"},
	)
	wsEventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "todo_ws_events_dropped_total",
		Help: "Events not delivered because a subscriber was too slow",
	})
)

func init() {
	prometheus.MustRegister(wsClients)
	prometheus.MustRegister(wsEventsPublished)
	prometheus.MustRegister(wsEventsDropped)
}
