package service

import (
	"context"
	"testing"
	"time"

	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/internal/repository/memory"
	"ai-sportscast-be/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMonitor(engine *scriptedEngine, searcher *fakeSearcher) (*monitorService, *memory.ResearchRepository) {
	research := memory.NewResearchRepository()
	svc := NewMonitorService(
		engine,
		searcher,
		&fakeBroadcaster{},
		&fakeSession{},
		research,
		time.Hour, // never ticks during a test
		logger.NewNopLogger(),
	).(*monitorService)
	return svc, research
}

func TestLiveMonitorCancelAndReplace(t *testing.T) {
	svc, _ := newTestMonitor(&scriptedEngine{}, &fakeSearcher{})

	svc.StartLiveMonitor("vid")
	svc.StartLiveMonitor("vid")

	svc.mu.Lock()
	assert.Len(t, svc.monitors, 1, "restart must replace, not stack")
	svc.mu.Unlock()

	svc.StartLiveMonitor("other")
	svc.mu.Lock()
	assert.Len(t, svc.monitors, 2)
	svc.mu.Unlock()

	svc.StopLiveMonitor("vid")
	svc.mu.Lock()
	_, ok := svc.monitors["vid"]
	svc.mu.Unlock()
	assert.False(t, ok)

	svc.StopAll()
	svc.mu.Lock()
	assert.Empty(t, svc.monitors)
	svc.mu.Unlock()
}

func TestStopUnknownMonitorIsNoop(t *testing.T) {
	svc, _ := newTestMonitor(&scriptedEngine{}, &fakeSearcher{})
	svc.StopLiveMonitor("never started")
}

func TestDetectSportFromKeywordTable(t *testing.T) {
	svc, _ := newTestMonitor(&scriptedEngine{}, &fakeSearcher{})

	assert.Equal(t, "UFC MMA", svc.detectSport(context.Background(), "UFC 300: Pereira vs Hill"))
	assert.Equal(t, "NBA basketball", svc.detectSport(context.Background(), "NBA Finals Game 7"))
}

func TestDetectSportFallsBackToModel(t *testing.T) {
	engine := &scriptedEngine{}
	svc, _ := newTestMonitor(engine, &fakeSearcher{})

	// scripted engine has no Generate, so an unknown title yields nothing
	assert.Empty(t, svc.detectSport(context.Background(), "Grandmaster blitz marathon"))
}

func TestProactiveResearchStoresSummary(t *testing.T) {
	searcher := &fakeSearcher{findings: []search.Finding{
		{Title: "Pereira", URL: "https://example.com/pereira"},
		{Title: "Hill", URL: "https://example.com/hill"},
	}}
	svc, research := newTestMonitor(&scriptedEngine{}, searcher)

	svc.StartProactiveResearch("vid", "UFC 300: Pereira vs Hill")

	require.Eventually(t, func() bool {
		_, ok := research.Get("vid")
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	summary, _ := research.Get("vid")
	assert.Equal(t, "UFC MMA", summary.Sport)
	assert.Equal(t, 2, summary.ProfileCount)
	assert.Contains(t, summary.Query, "UFC 300")
}

func TestProactiveResearchSkipsUnknownSport(t *testing.T) {
	svc, research := newTestMonitor(&scriptedEngine{}, &fakeSearcher{})

	svc.StartProactiveResearch("vid", "Grandmaster blitz marathon")

	assert.Never(t, func() bool {
		_, ok := research.Get("vid")
		return ok
	}, 200*time.Millisecond, 20*time.Millisecond)
}
