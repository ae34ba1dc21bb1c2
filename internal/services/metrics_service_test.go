package services

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsServiceTrackChat(t *testing.T) {
	m := NewMetricsService()

	m.TrackChat("policy_question", 100*time.Millisecond, 2, 2)
	m.TrackChat("policy_question", 300*time.Millisecond, 1, 2)
	m.TrackChat("chitchat", 50*time.Millisecond, 0, 0)

	snap := m.Snapshot()
	if snap.TotalChats != 3 {
		t.Errorf("TotalChats = %d, want 3", snap.TotalChats)
	}
	if snap.IntentDistribution["policy_question"] != 2 || snap.IntentDistribution["chitchat"] != 1 {
		t.Errorf("IntentDistribution = %v", snap.IntentDistribution)
	}
	if snap.AvgResponseTimeMs != 150 {
		t.Errorf("AvgResponseTimeMs = %d, want 150", snap.AvgResponseTimeMs)
	}
	// 3 of 4 citations valid
	if snap.CitationAccuracy != 75 {
		t.Errorf("CitationAccuracy = %v, want 75", snap.CitationAccuracy)
	}
	if snap.APILatencyMs != 15 {
		t.Errorf("APILatencyMs = %d, want 15", snap.APILatencyMs)
	}
}

func TestMetricsServiceAccuracyDefaultsTo100(t *testing.T) {
	m := NewMetricsService()
	m.TrackChat("chitchat", 10*time.Millisecond, 0, 0)

	if got := m.Snapshot().CitationAccuracy; got != 100 {
		t.Errorf("CitationAccuracy = %v, want 100 with no citations", got)
	}
}

func TestMetricsServiceResponseTimeWindow(t *testing.T) {
	m := NewMetricsService()

	// Fill past the window with slow turns, then add fast ones; only the
	// window should count.
	for i := 0; i < responseTimeWindow; i++ {
		m.TrackChat("chitchat", time.Second, 0, 0)
	}
	for i := 0; i < responseTimeWindow; i++ {
		m.TrackChat("chitchat", 10*time.Millisecond, 0, 0)
	}

	snap := m.Snapshot()
	if snap.AvgResponseTimeMs != 10 {
		t.Errorf("AvgResponseTimeMs = %d, want 10 (window should exclude old turns)", snap.AvgResponseTimeMs)
	}
	if snap.TotalChats != 2*responseTimeWindow {
		t.Errorf("TotalChats = %d, want %d", snap.TotalChats, 2*responseTimeWindow)
	}
}

func TestMetricsServiceStreamConnections(t *testing.T) {
	m := NewMetricsService()

	m.StreamConnected()
	m.StreamConnected()
	m.StreamDisconnected()

	if got := m.Snapshot().ActiveConnections; got != 1 {
		t.Errorf("ActiveConnections = %d, want 1", got)
	}

	// Never goes negative
	m.StreamDisconnected()
	m.StreamDisconnected()
	if got := m.Snapshot().ActiveConnections; got != 0 {
		t.Errorf("ActiveConnections = %d, want 0", got)
	}
}

func TestMetricsServiceConcurrentTracking(t *testing.T) {
	m := NewMetricsService()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.TrackChat("order_status", 5*time.Millisecond, 1, 1)
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	if snap.TotalChats != 1000 {
		t.Errorf("TotalChats = %d, want 1000", snap.TotalChats)
	}
	if snap.IntentDistribution["order_status"] != 1000 {
		t.Errorf("IntentDistribution = %v", snap.IntentDistribution)
	}
}

func TestMultipleMetricsServicesDoNotPanic(t *testing.T) {
	// Prometheus collectors are registered once per process; constructing
	// several services must be safe.
	a := NewMetricsService()
	b := NewMetricsService()
	a.TrackChat("chitchat", time.Millisecond, 0, 0)
	b.TrackChat("chitchat", time.Millisecond, 0, 0)
}
