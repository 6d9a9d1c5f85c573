package buyrequest_test

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/pkg/errcodes"
)

type memRepo struct {
	mu    sync.Mutex
	items map[string]entity.BuyRequest
}

func newMemRepo(items ...entity.BuyRequest) *memRepo {
	r := &memRepo{items: map[string]entity.BuyRequest{}}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func errNotFound() error {
	return domain.NewNotFoundError(errcodes.BuyRequestNotFound, "buy request not found")
}

func clone(r entity.BuyRequest) entity.BuyRequest {
	r.StatusHistory = slices.Clone(r.StatusHistory)
	r.PhotoURLs = slices.Clone(r.PhotoURLs)
	return r
}

func (m *memRepo) stored(id string) entity.BuyRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.items[id])
}

func (m *memRepo) GetByID(_ context.Context, id string) (*entity.BuyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.items[id]
	if !ok {
		return nil, errNotFound()
	}

	r = clone(r)

	return &r, nil
}

func (m *memRepo) GetByIDAndOwner(_ context.Context, id, ownerEmail string) (*entity.BuyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.items[id]
	if !ok || r.CustomerEmail != ownerEmail {
		return nil, errNotFound()
	}

	r = clone(r)

	return &r, nil
}

func (m *memRepo) filtered(filter entity.BuyRequestFilter) []entity.BuyRequest {
	statuses := filter.StoredStatuses()
	search := strings.ToLower(filter.Search)

	var out []entity.BuyRequest
	for _, r := range m.items {
		if len(statuses) > 0 && !slices.Contains(statuses, r.Status) {
			continue
		}
		if filter.OwnerEmail != "" && r.CustomerEmail != filter.OwnerEmail {
			continue
		}
		if search != "" {
			fields := []string{r.CustomerEmail, r.CustomerName, r.CustomerPhone}
			if r.ImeiSerial != nil {
				fields = append(fields, *r.ImeiSerial)
			}
			if !slices.ContainsFunc(fields, func(f string) bool {
				return strings.Contains(strings.ToLower(f), search)
			}) {
				continue
			}
		}
		out = append(out, clone(r))
	}

	slices.SortFunc(out, func(a, b entity.BuyRequest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return out
}

func (m *memRepo) List(_ context.Context, filter entity.BuyRequestFilter, offset, limit int) ([]entity.BuyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.filtered(filter)
	if offset >= len(items) {
		return nil, nil
	}

	return items[offset:min(offset+limit, len(items))], nil
}

func (m *memRepo) Count(_ context.Context, filter entity.BuyRequestFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.filtered(filter)), nil
}

func (m *memRepo) Insert(_ context.Context, r *entity.BuyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[r.ID] = clone(*r)

	return nil
}

func (m *memRepo) Update(_ context.Context, r *entity.BuyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[r.ID]; !ok {
		return errNotFound()
	}

	m.items[r.ID] = clone(*r)

	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return errNotFound()
	}

	delete(m.items, id)

	return nil
}

type catalogStub map[string]entity.ModelPrice

func (c catalogStub) FindActiveByID(_ context.Context, id string) (*entity.ModelPrice, error) {
	mp, ok := c[id]
	if !ok || !mp.IsActive {
		return nil, nil
	}

	return &mp, nil
}

// stepClock сдвигается на минуту при каждом вызове.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type eventRecorder struct {
	events []entity.LifecycleEvent
	err    error
}

func (e *eventRecorder) Publish(_ context.Context, event entity.LifecycleEvent) error {
	e.events = append(e.events, event)
	return e.err
}

func (e *eventRecorder) types() []entity.EventType {
	var out []entity.EventType
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

type metricsRecorder struct {
	created     []entity.DeviceCategory
	transitions []string
}

func (m *metricsRecorder) RequestCreated(category entity.DeviceCategory) {
	m.created = append(m.created, category)
}

func (m *metricsRecorder) StatusChanged(status entity.BuyRequestStatus, actor string) {
	m.transitions = append(m.transitions, string(status)+"/"+actor)
}

var errPublish = errors.New("queue is down")
