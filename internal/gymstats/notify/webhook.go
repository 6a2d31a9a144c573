package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/gymtracker/internal/gymstats/session"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
)

const DefaultWebhookTimeout = 3 * time.Second

// WebhookNotifier POSTs notifications as JSON to a configured URL.
type WebhookNotifier struct {
	url            string
	httpClient     *http.Client
	metricsManager *metrics.Manager
}

// NewWebhookNotifier uses a traced http client when httpClient is nil.
func NewWebhookNotifier(url string, httpClient *http.Client, metricsManager *metrics.Manager) *WebhookNotifier {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultWebhookTimeout,
		}
	}
	return &WebhookNotifier{
		url:            url,
		httpClient:     httpClient,
		metricsManager: metricsManager,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, notification session.Notification) {
	if err := n.post(ctx, notification); err != nil {
		log.Errorf("webhook notifier: %s for %s: %s", notification.Type, notification.WorkoutID, err)
		n.metricsManager.CounterNotificationFailures.WithLabelValues("webhook").Inc()
	}
}

func (n *WebhookNotifier) post(ctx context.Context, notification session.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if err := resp.Body.Close(); err != nil {
			log.Warnf("webhook notifier: close response body: %s", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
