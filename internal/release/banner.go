// Package release tracks the update banner fed by the client's update
// lifecycle signals and by the release manifest watcher.
package release

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNoUpdate = errors.New("no update pending")

const (
	msgOfflineReady = "App is ready to work offline."
	msgNeedRefresh  = "New update available! Update now?"

	ActionApply   = "apply"
	ActionDismiss = "dismiss"
)

// Signals are the two flags reported by the update lifecycle hook.
type Signals struct {
	OfflineReady bool `json:"offline_ready"`
	NeedRefresh  bool `json:"need_refresh"`
}

type State struct {
	Signals
	Visible        bool     `json:"visible"`
	Message        string   `json:"message,omitempty"`
	Actions        []string `json:"actions,omitempty"`
	CurrentVersion string   `json:"current_version"`
	LatestVersion  string   `json:"latest_version,omitempty"`
}

// Applier performs the update, e.g. tells clients to reload onto version.
type Applier func(ctx context.Context, version string) error

type Banner struct {
	mu      sync.RWMutex
	signals Signals
	current string
	latest  string
	apply   Applier
}

func NewBanner(currentVersion string, apply Applier) *Banner {
	return &Banner{current: currentVersion, apply: apply}
}

func (b *Banner) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()

	st := State{
		Signals:        b.signals,
		Visible:        b.signals.OfflineReady || b.signals.NeedRefresh,
		CurrentVersion: b.current,
		LatestVersion:  b.latest,
	}
	if !st.Visible {
		return st
	}

	if b.signals.OfflineReady {
		st.Message = msgOfflineReady
	} else {
		st.Message = msgNeedRefresh
	}
	if b.signals.NeedRefresh {
		st.Actions = append(st.Actions, ActionApply)
	}
	st.Actions = append(st.Actions, ActionDismiss)
	return st
}

func (b *Banner) Current() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Signal records the hook's flags as reported.
func (b *Banner) Signal(s Signals) State {
	b.mu.Lock()
	b.signals = s
	b.mu.Unlock()
	return b.State()
}

// Offer raises need_refresh for a newer version found by the watcher.
func (b *Banner) Offer(version string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = version
	b.signals.NeedRefresh = true
}

// Apply runs the applier and clears the banner. It fails with ErrNoUpdate
// when nothing is pending.
func (b *Banner) Apply(ctx context.Context) (State, error) {
	b.mu.Lock()
	if !b.signals.NeedRefresh {
		b.mu.Unlock()
		return b.State(), ErrNoUpdate
	}
	target := b.latest
	b.mu.Unlock()

	if b.apply != nil {
		if err := b.apply(ctx, target); err != nil {
			return b.State(), fmt.Errorf("apply update: %w", err)
		}
	}

	b.mu.Lock()
	if target != "" {
		b.current = target
	}
	b.latest = ""
	b.signals = Signals{}
	b.mu.Unlock()
	return b.State(), nil
}

func (b *Banner) Dismiss() State {
	b.mu.Lock()
	b.signals = Signals{}
	b.mu.Unlock()
	return b.State()
}
