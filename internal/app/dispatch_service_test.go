package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"rent_reminder_service/internal/domain/push"
	"rent_reminder_service/internal/domain/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCKS
// ============================================================================

type mockSubscriptionRepository struct {
	mu      sync.Mutex
	subs    []*subscription.PushSubscription
	deleted []int64
	listErr error
	delErr  error
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, s *subscription.PushSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, s)
	return nil
}

func (m *mockSubscriptionRepository) List(ctx context.Context) ([]*subscription.PushSubscription, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*subscription.PushSubscription{}, m.subs...), nil
}

func (m *mockSubscriptionRepository) DeleteByID(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockPushClient struct {
	mu        sync.Mutex
	sent      map[string][]byte // endpoint -> last payload
	errByEndp map[string]error
}

func newMockPushClient() *mockPushClient {
	return &mockPushClient{
		sent:      make(map[string][]byte),
		errByEndp: make(map[string]error),
	}
}

func (m *mockPushClient) Send(ctx context.Context, sub *subscription.PushSubscription, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[sub.Endpoint] = payload
	return m.errByEndp[sub.Endpoint]
}

func testSubscriptions() []*subscription.PushSubscription {
	return []*subscription.PushSubscription{
		{ID: 1, Endpoint: "https://push.example/one", P256dhKey: "p1", AuthKey: "a1"},
		{ID: 2, Endpoint: "https://push.example/two", P256dhKey: "p2", AuthKey: "a2"},
		{ID: 3, Endpoint: "https://push.example/three", P256dhKey: "p3", AuthKey: "a3"},
	}
}

// ============================================================================
// FAN-OUT
// ============================================================================

func TestDispatch_DeliversToEverySubscription(t *testing.T) {
	repo := &mockSubscriptionRepository{subs: testSubscriptions()}
	client := newMockPushClient()
	svc := NewDispatchService(repo, client, testLogger())

	result := svc.Dispatch(context.Background(), Message{Title: "Indekos Manager", Body: "2 rooms due soon. ", Icon: "/logo.svg"})

	assert.Equal(t, 3, result.Delivered)
	assert.Zero(t, result.Removed)
	assert.Zero(t, result.Failed)
	assert.Len(t, client.sent, 3)
	assert.Empty(t, repo.deleted)
}

func TestDispatch_PayloadIsTheEncodedMessage(t *testing.T) {
	repo := &mockSubscriptionRepository{subs: testSubscriptions()[:1]}
	client := newMockPushClient()
	svc := NewDispatchService(repo, client, testLogger())

	svc.Dispatch(context.Background(), Message{Title: "Indekos Manager", Body: "1 rooms OVERDUE!", Icon: "/logo.svg"})

	var decoded Message
	require.NoError(t, json.Unmarshal(client.sent["https://push.example/one"], &decoded))
	assert.Equal(t, "Indekos Manager", decoded.Title)
	assert.Equal(t, "1 rooms OVERDUE!", decoded.Body)
	assert.Equal(t, "/logo.svg", decoded.Icon)
}

func TestDispatch_GoneEndpointIsRemovedOthersStillDelivered(t *testing.T) {
	// One endpoint reports permanently gone: exactly that subscription is
	// deleted, and the other two receive the message regardless.
	repo := &mockSubscriptionRepository{subs: testSubscriptions()}
	client := newMockPushClient()
	client.errByEndp["https://push.example/two"] = push.ErrSubscriptionGone
	svc := NewDispatchService(repo, client, testLogger())

	result := svc.Dispatch(context.Background(), Message{Title: "Indekos Manager", Body: "1 rooms OVERDUE!", Icon: "/logo.svg"})

	assert.Equal(t, 2, result.Delivered)
	assert.Equal(t, 1, result.Removed)
	assert.Zero(t, result.Failed)
	assert.Equal(t, []int64{2}, repo.deleted)
	assert.Contains(t, client.sent, "https://push.example/one")
	assert.Contains(t, client.sent, "https://push.example/three")
}

func TestDispatch_TransientFailureIsDroppedWithoutCleanup(t *testing.T) {
	repo := &mockSubscriptionRepository{subs: testSubscriptions()}
	client := newMockPushClient()
	client.errByEndp["https://push.example/one"] = errors.New("503 service unavailable")
	svc := NewDispatchService(repo, client, testLogger())

	result := svc.Dispatch(context.Background(), Message{Title: "Indekos Manager", Body: "x", Icon: "/logo.svg"})

	assert.Equal(t, 2, result.Delivered)
	assert.Zero(t, result.Removed)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, repo.deleted, "transient failures must not delete subscriptions")
}

func TestDispatch_DeleteFailureDoesNotAffectOtherDeliveries(t *testing.T) {
	repo := &mockSubscriptionRepository{subs: testSubscriptions(), delErr: errors.New("deadlock")}
	client := newMockPushClient()
	client.errByEndp["https://push.example/two"] = push.ErrSubscriptionGone
	svc := NewDispatchService(repo, client, testLogger())

	result := svc.Dispatch(context.Background(), Message{Title: "Indekos Manager", Body: "x", Icon: "/logo.svg"})

	assert.Equal(t, 2, result.Delivered)
	assert.Equal(t, 1, result.Removed)
}

func TestDispatch_RegistryListFailureIsSwallowed(t *testing.T) {
	repo := &mockSubscriptionRepository{listErr: errors.New("connection refused")}
	client := newMockPushClient()
	svc := NewDispatchService(repo, client, testLogger())

	result := svc.Dispatch(context.Background(), Message{Title: "Indekos Manager", Body: "x", Icon: "/logo.svg"})

	assert.Zero(t, result.Delivered)
	assert.Empty(t, client.sent)
}

func TestDispatch_NoSubscriptionsIsANoOp(t *testing.T) {
	repo := &mockSubscriptionRepository{}
	client := newMockPushClient()
	svc := NewDispatchService(repo, client, testLogger())

	result := svc.Dispatch(context.Background(), Message{Title: "Indekos Manager", Body: "x", Icon: "/logo.svg"})

	assert.Equal(t, DispatchResult{}, result)
	assert.Empty(t, client.sent)
}
