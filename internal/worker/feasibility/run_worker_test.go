package feasibility_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/worker/feasibility"
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

type MockRunExecutor struct {
	mock.Mock
}

func (m *MockRunExecutor) Execute(ctx context.Context, event domain.RunRequestEvent) (*domain.RunDoneEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunDoneEvent), args.Error(1)
}

const group = "test-group"

func feed(t *testing.T, msgs ...domain.StreamMessage) <-chan domain.StreamMessage {
	t.Helper()
	ch := make(chan domain.StreamMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	return ch
}

func runMessage(t *testing.T, id string, event domain.RunRequestEvent) domain.StreamMessage {
	t.Helper()
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(raw)}
}

// startWorker runs w until stop is closed and returns its exit error
func startWorker(t *testing.T, w *feasibility.RunWorker, stop <-chan struct{}) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	select {
	case <-stop:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not reach the expected step")
	}
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
		return nil
	}
}

func TestRunWorker_Name(t *testing.T) {
	w := feasibility.NewRunWorker(&MockStreamRepository{}, &MockRunExecutor{}, group, 3, zap.NewNop())
	assert.Equal(t, "proforma-runs", w.Name())
	assert.Equal(t, group, w.ConsumerGroup())
}

func TestRunWorker_ProcessesRun(t *testing.T) {
	stream := &MockStreamRepository{}
	executor := &MockRunExecutor{}
	event := domain.RunRequestEvent{RunID: uuid.New(), Forms: []string{"residential"}}
	done := &domain.RunDoneEvent{RunID: event.RunID, Feasible: map[string]int{"residential": 4}, Sites: 10}

	acked := make(chan struct{})
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamProFormaRun, group).Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamProFormaRun, group, mock.AnythingOfType("string")).
		Return(feed(t, runMessage(t, "1-0", event)), nil)
	executor.On("Execute", mock.Anything, mock.MatchedBy(func(e domain.RunRequestEvent) bool {
		return e.RunID == event.RunID
	})).Return(done, nil).Once()
	stream.On("PublishToStream", mock.Anything, domain.StreamProFormaDone, done).Return(nil).Once()
	stream.On("AckMessage", mock.Anything, domain.StreamProFormaRun, group, "1-0").
		Run(func(mock.Arguments) { close(acked) }).
		Return(nil).Once()

	w := feasibility.NewRunWorker(stream, executor, group, 3, zap.NewNop())
	assert.NoError(t, startWorker(t, w, acked))

	stream.AssertExpectations(t)
	executor.AssertExpectations(t)
}

func TestRunWorker_FailedRunPublishesError(t *testing.T) {
	stream := &MockStreamRepository{}
	executor := &MockRunExecutor{}
	event := domain.RunRequestEvent{RunID: uuid.New()}

	acked := make(chan struct{})
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamProFormaRun, group).Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamProFormaRun, group, mock.Anything).
		Return(feed(t, runMessage(t, "2-0", event)), nil)
	executor.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("database is locked")).Twice()
	stream.On("PublishToStream", mock.Anything, domain.StreamProFormaDone, mock.MatchedBy(func(e *domain.RunDoneEvent) bool {
		return e.RunID == event.RunID && e.Error != "" && e.Sites == 0
	})).Return(nil).Once()
	stream.On("AckMessage", mock.Anything, domain.StreamProFormaRun, group, "2-0").
		Run(func(mock.Arguments) { close(acked) }).
		Return(nil).Once()

	w := feasibility.NewRunWorker(stream, executor, group, 2, zap.NewNop()).WithRetryDelay(time.Millisecond)
	assert.NoError(t, startWorker(t, w, acked))

	executor.AssertNumberOfCalls(t, "Execute", 2)
	stream.AssertExpectations(t)
}

func TestRunWorker_DropsMalformedMessage(t *testing.T) {
	stream := &MockStreamRepository{}
	executor := &MockRunExecutor{}

	acked := make(chan struct{})
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamProFormaRun, group).Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamProFormaRun, group, mock.Anything).
		Return(feed(t, domain.StreamMessage{ID: "3-0", Data: "{not json"}), nil)
	stream.On("AckMessage", mock.Anything, domain.StreamProFormaRun, group, "3-0").
		Run(func(mock.Arguments) { close(acked) }).
		Return(nil).Once()

	w := feasibility.NewRunWorker(stream, executor, group, 3, zap.NewNop())
	assert.NoError(t, startWorker(t, w, acked))

	executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunWorker_PublishFailureLeavesMessagePending(t *testing.T) {
	stream := &MockStreamRepository{}
	executor := &MockRunExecutor{}
	event := domain.RunRequestEvent{RunID: uuid.New()}

	published := make(chan struct{})
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamProFormaRun, group).Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamProFormaRun, group, mock.Anything).
		Return(feed(t, runMessage(t, "4-0", event)), nil)
	executor.On("Execute", mock.Anything, mock.Anything).Return(&domain.RunDoneEvent{RunID: event.RunID}, nil).Once()
	stream.On("PublishToStream", mock.Anything, domain.StreamProFormaDone, mock.Anything).
		Run(func(mock.Arguments) { close(published) }).
		Return(errors.New("connection reset")).Once()

	w := feasibility.NewRunWorker(stream, executor, group, 1, zap.NewNop())
	assert.NoError(t, startWorker(t, w, published))

	stream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunWorker_ConsumerGroupFailure(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamProFormaRun, group).Return(errors.New("NOAUTH"))

	w := feasibility.NewRunWorker(stream, &MockRunExecutor{}, group, 1, zap.NewNop())
	assert.Error(t, w.Start(context.Background()))
}

func TestRunWorker_ContextCancellation(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamProFormaRun, group).Return(nil)
	var idle <-chan domain.StreamMessage = make(chan domain.StreamMessage)
	stream.On("ConsumeStream", mock.Anything, domain.StreamProFormaRun, group, mock.Anything).Return(idle, nil)

	w := feasibility.NewRunWorker(stream, &MockRunExecutor{}, group, 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
