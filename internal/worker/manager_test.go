package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/worker"
)

// blockingWorker runs until stopped, or ignores Stop when stubborn
type blockingWorker struct {
	*worker.BaseWorker
	started  chan struct{}
	stubborn bool
}

func newBlockingWorker(name string, stubborn bool) *blockingWorker {
	return &blockingWorker{
		BaseWorker: worker.NewBaseWorker(name, "test-group", zap.NewNop()),
		started:    make(chan struct{}),
		stubborn:   stubborn,
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	close(w.started)
	if w.stubborn {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestBaseWorker_Stop(t *testing.T) {
	w := worker.NewBaseWorker("runs", "group", zap.NewNop())
	assert.Equal(t, "runs", w.Name())
	assert.Equal(t, "group", w.ConsumerGroup())
	assert.False(t, w.IsStopped())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case <-w.StopChan():
	default:
		t.Fatal("stop channel not closed")
	}
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	a := newBlockingWorker("a", false)
	b := newBlockingWorker("b", false)
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	<-a.started
	<-b.started

	assert.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 0)
	assert.ErrorIs(t, m.Start(context.Background()), worker.ErrNoWorkers)
}

func TestWorkerManager_ShutdownTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	w := newBlockingWorker("stuck", true)
	m.Register(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))
	<-w.started

	assert.Error(t, m.Stop())
}
