package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	checkTimeout     = 10 * time.Second
	maxManifestBytes = 64 << 10
)

type manifest struct {
	Version string `json:"version"`
}

// Watcher polls a release manifest and offers newer versions to the banner.
type Watcher struct {
	URL    string
	Client *http.Client
	Banner *Banner
	Log    *zap.Logger
}

func NewWatcher(url string, banner *Banner, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		URL:    url,
		Client: &http.Client{Timeout: checkTimeout},
		Banner: banner,
		Log:    log,
	}
}

// Check fetches the manifest once. It reports whether a new version was offered.
func (w *Watcher) Check(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URL, nil)
	if err != nil {
		return false, err
	}

	resp, err := w.Client.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("fetch manifest: status=%d", resp.StatusCode)
	}

	var m manifest
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxManifestBytes)).Decode(&m); err != nil {
		return false, fmt.Errorf("decode manifest: %w", err)
	}

	if m.Version == "" || m.Version == w.Banner.Current() {
		return false, nil
	}

	w.Banner.Offer(m.Version)
	w.Log.Info("new release available",
		zap.String("current", w.Banner.Current()),
		zap.String("latest", m.Version),
	)
	return true, nil
}

// Start runs Check on schedule (standard cron syntax or "@every 5m"). Stop
// the returned scheduler on shutdown.
func (w *Watcher) Start(schedule string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		if _, err := w.Check(ctx); err != nil {
			w.Log.Warn("release check failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule release check %q: %w", schedule, err)
	}

	c.Start()
	w.Log.Info("release watcher started", zap.String("schedule", schedule), zap.String("url", w.URL))
	return c, nil
}
