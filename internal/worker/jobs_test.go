package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/game"
	"github.com/osse101/ChronoFarm_Go/internal/save"
	"github.com/osse101/ChronoFarm_Go/internal/save/filestore"
	"github.com/osse101/ChronoFarm_Go/internal/store"
	"github.com/osse101/ChronoFarm_Go/internal/testing/gametest"
	"github.com/osse101/ChronoFarm_Go/internal/testing/leaktest"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
	"github.com/osse101/ChronoFarm_Go/internal/worker"
)

func newSession(t *testing.T, opts ...gametest.Option) (*game.Session, *gametest.Fixture) {
	t.Helper()
	f := gametest.New(t, opts...)
	fs, err := filestore.New(t.TempDir(), f.Clock.Now)
	require.NoError(t, err)
	saves, err := save.NewService(fs, save.Options{
		Clock:    f.Clock,
		Defaults: func() domain.GameState { return game.DefaultState(f.Catalog, f.Clock.Now(), game.DefaultConfig()) },
	})
	require.NoError(t, err)
	sess, err := game.New(f.Store, f.Bus, f.Catalog, f.Clock, utils.FixedRandomizer{}, saves, game.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess, f
}

func TestTickJob(t *testing.T) {
	sess, f := newSession(t)
	job := worker.NewTickJob(sess)
	ctx := context.Background()

	require.NoError(t, job.Process(ctx))
	f.Clock.Advance(time.Second)
	require.NoError(t, job.Process(ctx))

	last, ok := store.GetAs[time.Time](f.Store, domain.PathLastTick)
	require.True(t, ok)
	assert.True(t, f.Clock.Now().Equal(last))
}

func TestAutosaveJob(t *testing.T) {
	sess, f := newSession(t)
	job := worker.NewAutosaveJob(sess)
	ctx := context.Background()

	require.NoError(t, job.Process(ctx))
	assert.Equal(t, 1, f.Events.Count(event.TopicGameSaved))

	require.NoError(t, f.Store.Set("settings.autosave", false, store.SetOptions{}))
	require.NoError(t, job.Process(ctx))
	assert.Equal(t, 1, f.Events.Count(event.TopicGameSaved), "disabled autosave skips the save")
}

func TestJourneyWorker_PlaysInBackground(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	sess, f := newSession(t, gametest.WithUnlocked(domain.EraEgyptian))
	w := worker.NewJourneyWorker(sess)

	j, err := w.Start(context.Background(), domain.EraEgyptian)
	require.NoError(t, err)
	assert.Equal(t, domain.EraEgyptian, j.To())

	require.Eventually(t, func() bool { return w.InFlight() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, f.Events.Count(event.TopicTravelSuccess))
	require.NoError(t, w.Shutdown(context.Background()))
	checker.Check(0)
}

func TestJourneyWorker_ValidationIsSynchronous(t *testing.T) {
	sess, f := newSession(t)
	w := worker.NewJourneyWorker(sess)

	_, err := w.Start(context.Background(), domain.EraEgyptian)
	require.ErrorIs(t, err, domain.ErrEraLocked)
	assert.Zero(t, w.InFlight())
	assert.Equal(t, 1, f.Events.Count(event.TopicTravelFailed))
}

func TestJourneyWorker_ShutdownRefunds(t *testing.T) {
	sess, f := newSession(t, gametest.WithUnlocked(domain.EraEgyptian))
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.Clock.OnSleep = func(time.Time) {
		once.Do(func() {
			close(entered)
			<-release
		})
	}
	w := worker.NewJourneyWorker(sess)

	_, err := w.Start(context.Background(), domain.EraEgyptian)
	require.NoError(t, err)
	<-entered

	errc := make(chan error, 1)
	go func() { errc <- w.Shutdown(context.Background()) }()
	// let shutdown cancel the journey before the sleep returns
	time.Sleep(50 * time.Millisecond)
	close(release)
	require.NoError(t, <-errc)

	assert.Equal(t, 20, sess.Inventory().Resources[domain.ResourceTemporalPulses])
	failed := gametest.Last[event.TravelFailed](t, f.Events)
	assert.Equal(t, domain.EraEgyptian, failed.To)

	_, err = w.Start(context.Background(), domain.EraEgyptian)
	require.ErrorIs(t, err, domain.ErrTravelInterrupted, "a stopped worker refunds immediately")
	assert.Equal(t, 20, sess.Inventory().Resources[domain.ResourceTemporalPulses])
}
