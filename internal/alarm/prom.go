package alarm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"tinyfeed/internal/config"
	"tinyfeed/internal/logging"
)

// balanceGauge and tsGauge are pushed together on every balance
// sample, not only when an alarm fires, so a dashboard can chart the
// balance trend and see when the feeder last reported at all.
var (
	balanceGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "balance_status", Help: "Submitting account gas balance in whole coins"})
	tsGauge      = prometheus.NewGauge(prometheus.GaugeOpts{Name: "push_timestamp", Help: "Unix seconds this sample was pushed"})
)

// PromPusher pushes the balance gauges to a pushgateway, labelled by
// ip/env/account so multiple feeder instances don't collide.
type PromPusher struct {
	pusher *push.Pusher
}

func NewPromPusher(cfg *config.Config) *PromPusher {
	pusher := push.New(cfg.URL, cfg.Job).
		Collector(balanceGauge).
		Collector(tsGauge).
		Grouping("instance", cfg.Instance).
		BasicAuth(cfg.PromUsername, cfg.PromPassword)
	return &PromPusher{pusher: pusher}
}

// PushBalanceStatus sets both gauges and pushes them, logging rather
// than failing the caller's tick on a pushgateway hiccup.
func (p *PromPusher) PushBalanceStatus(balanceWholeCoins float64, ip, env, account string) {
	log := logging.Default().Component("alarm")
	balanceGauge.Set(balanceWholeCoins)
	tsGauge.Set(float64(time.Now().Unix()))

	err := p.pusher.
		Grouping("ip", ip).
		Grouping("env", env).
		Grouping("account", account).
		Push()
	if err != nil {
		log.Error("prometheus push failed", "err", err)
		return
	}
	log.Info("prometheus push succeeded")
}
