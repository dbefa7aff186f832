package service_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/internal/repository"
	"github.com/limbo/missions/pkg/calendar"
	"github.com/limbo/missions/pkg/entity"
)

var errDB = errors.New("db error")

// memStore is an in-memory stand-in for the users, templates and
// subscriptions repositories. Every method holds the lock for its whole
// body, which gives CompleteDay the same all-or-nothing behaviour as the
// database transaction.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	templates map[int]entity.MissionTemplate
	subs      map[uuid.UUID]*entity.Subscription
	logs      map[uuid.UUID]map[time.Time]bool

	completeErr error
	listCalls   atomic.Int32
	// onList runs at the start of ListByUserID, before the lock is taken.
	onList      func()
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uuid.UUID]*entity.User{},
		templates: map[int]entity.MissionTemplate{
			1: {ID: 1, Title: "Exercise", Category: entity.CategoryHealth, RewardPoints: 100},
			2: {ID: 2, Title: "Meditate", Category: entity.CategoryMindfulness, RewardPoints: 50},
		},
		subs: map[uuid.UUID]*entity.Subscription{},
		logs: map[uuid.UUID]map[time.Time]bool{},
	}
}

func (m *memStore) addUser(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.users[id] = &entity.User{ID: id, Name: name}
	return id
}

func (m *memStore) points(uid uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[uid].Points
}

func (m *memStore) status(id uuid.UUID) entity.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs[id].Status
}

func (m *memStore) logRows(id uuid.UUID) map[time.Time]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[time.Time]bool{}
	for d, done := range m.logs[id] {
		out[d] = done
	}
	return out
}

// Users

func (m *memStore) Create(ctx context.Context, user *entity.User) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Name == user.Name {
			return uuid.Nil, errorvalues.ErrUserExists
		}
	}
	id := uuid.New()
	m.users[id] = &entity.User{ID: id, Name: user.Name}
	return id, nil
}

func (m *memStore) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type usersRepo struct{ *memStore }

func (u usersRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.users[uid]; !ok {
		return errorvalues.ErrUserNotFound
	}
	for id, sub := range u.subs {
		if sub.UserID == uid {
			delete(u.logs, id)
			delete(u.subs, id)
		}
	}
	delete(u.users, uid)
	return nil
}

// Templates

type templatesRepo struct{ *memStore }

func (t templatesRepo) List(ctx context.Context) ([]entity.MissionTemplate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]entity.MissionTemplate, 0, len(t.templates))
	for _, tmpl := range t.templates {
		out = append(out, tmpl)
	}
	slices.SortFunc(out, func(a, b entity.MissionTemplate) int { return a.ID - b.ID })
	return out, nil
}

func (t templatesRepo) GetByID(ctx context.Context, id int) (*entity.MissionTemplate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tmpl, ok := t.templates[id]
	if !ok {
		return nil, errorvalues.ErrTemplateNotFound
	}
	return &tmpl, nil
}

// Subscriptions

type subsRepo struct{ *memStore }

func (s subsRepo) Create(ctx context.Context, sub *entity.Subscription, dueDates []time.Time) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.subs {
		if other.UserID == sub.UserID && other.TemplateID == sub.TemplateID {
			return uuid.Nil, errorvalues.ErrSubscriptionExists
		}
	}
	id := uuid.New()
	stored := *sub
	stored.ID = id
	stored.Logs = nil
	s.subs[id] = &stored
	s.logs[id] = map[time.Time]bool{}
	for _, d := range dueDates {
		s.logs[id][d] = false
	}
	sub.ID = id
	return id, nil
}

func (s subsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok {
		return nil, errorvalues.ErrSubscriptionNotFound
	}
	cp := *sub
	tmpl := s.templates[sub.TemplateID]
	cp.Template = &tmpl
	return &cp, nil
}

func (s subsRepo) ListByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Subscription, error) {
	s.listCalls.Add(1)
	if s.onList != nil {
		s.onList()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Subscription, 0)
	for id, sub := range s.subs {
		if sub.UserID != uid {
			continue
		}
		cp := *sub
		tmpl := s.templates[sub.TemplateID]
		cp.Template = &tmpl
		cp.Logs = []entity.Log{}
		for d, done := range s.logs[id] {
			cp.Logs = append(cp.Logs, entity.Log{SubscriptionID: id, Date: d, IsDone: done})
		}
		slices.SortFunc(cp.Logs, func(a, b entity.Log) int { return a.Date.Compare(b.Date) })
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *entity.Subscription) int { return a.TemplateID - b.TemplateID })
	return out, nil
}

func (s subsRepo) CompleteDay(ctx context.Context, p repository.CompleteDayParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completeErr != nil {
		return false, s.completeErr
	}
	sub, ok := s.subs[p.SubscriptionID]
	if !ok {
		return false, errorvalues.ErrSubscriptionNotFound
	}
	s.logs[sub.ID][calendar.Day(p.Date)] = true
	if !p.Terminal || sub.Status == entity.StatusCompleted {
		return false, nil
	}
	sub.Status = entity.StatusCompleted
	s.users[p.UserID].Points += p.Reward
	return true, nil
}

func (s subsRepo) SettleExpired(ctx context.Context, uid uuid.UUID, today time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, sub := range s.subs {
		if sub.UserID == uid && sub.Status == entity.StatusOngoing && sub.EndDate.Before(today) {
			sub.Status = entity.StatusCompleted
			n++
		}
	}
	return n, nil
}

func (s subsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[id]; !ok {
		return errorvalues.ErrSubscriptionNotFound
	}
	delete(s.logs, id)
	delete(s.subs, id)
	return nil
}

// fakeEvaluator counts calls and returns a fixed answer.
type fakeEvaluator struct {
	calls  atomic.Int32
	badges []entity.BadgeDefinition
	err    error
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, uid uuid.UUID) ([]entity.BadgeDefinition, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.badges, nil
}
