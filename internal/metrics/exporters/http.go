// Package exporters serves the registered metrics over HTTP.
package exporters

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/streamcaps/internal/logging"
)

// HTTPHandler serves every promauto-registered metric, in OpenMetrics when the
// scraper asks for it. Scrapes are themselves counted.
func HTTPHandler() http.Handler {
	return HandlerFor(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// HandlerFor serves the metrics of gatherer and instruments scrapes on reg.
// A failing collector is logged and skipped rather than failing the scrape.
func HandlerFor(reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	return promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:          scrapeLogger{},
		ErrorHandling:     promhttp.ContinueOnError,
		EnableOpenMetrics: true,
	}))
}

type scrapeLogger struct{}

func (scrapeLogger) Println(v ...any) {
	logging.GetLogger("metrics").Warn("Metrics scrape error", "error", v)
}
