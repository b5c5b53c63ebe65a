package common

import (
	"github.com/futig/interview-agent/internal/config"
	pkgHTTP "github.com/futig/interview-agent/pkg/http"
	"go.uber.org/zap"
)

const userAgent = "interview-agent"

// NewBaseConnector builds the outbound HTTP connector of an external service.
// Requests are logged under the service name.
func NewBaseConnector(service string, cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	return pkgHTTP.NewConnector(
		&pkgHTTP.ConnectorConfig{
			Logger:  logger.Named(service),
			BaseURL: cfg.Url,
		},
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithAuthToken(cfg.Token),
		pkgHTTP.WithDefaultHeader("User-Agent", userAgent+"/"+service),
		pkgHTTP.WithRequestLogging(),
	)
}
