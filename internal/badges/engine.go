// Package badges evaluates declarative badge conditions against a user's
// statistics snapshot and persists newly earned awards.
package badges

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/limbo/missions/pkg/entity"
	"github.com/limbo/missions/pkg/logging"
	"github.com/limbo/missions/pkg/metrics"
)

type SubscriptionLister interface {
	ListByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Subscription, error)
}

type AwardStore interface {
	ListDefinitions(ctx context.Context) ([]entity.BadgeDefinition, error)
	ListOwned(ctx context.Context, uid uuid.UUID) (map[int]struct{}, error)
	CreateAward(ctx context.Context, uid uuid.UUID, badgeID int) (bool, error)
}

type compiledRule struct {
	raw  string
	rule Rule
}

type Engine struct {
	subs   SubscriptionLister
	awards AwardStore
	clock  clockwork.Clock

	mu    sync.Mutex
	rules map[int]compiledRule
}

func NewEngine(subs SubscriptionLister, awards AwardStore, clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		subs:   subs,
		awards: awards,
		clock:  clock,
		rules:  make(map[int]compiledRule),
	}
}

// Load reads the badge definitions and compiles their conditions ahead of
// any evaluation. It returns the definitions whose condition is malformed;
// those badges are never awarded.
func (e *Engine) Load(ctx context.Context) ([]entity.BadgeDefinition, error) {
	rules, err := e.loadRules(ctx)
	if err != nil {
		return nil, err
	}
	malformed := make([]entity.BadgeDefinition, 0)
	for _, rule := range rules {
		if rule.Err != nil {
			malformed = append(malformed, rule.Badge)
		}
	}
	return malformed, nil
}

func (e *Engine) loadRules(ctx context.Context) ([]Rule, error) {
	defs, err := e.awards.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	return e.compile(ctx, defs), nil
}

// Evaluate awards every unowned badge whose condition holds for uid and
// returns them in definition order. A badge someone else awarded concurrently
// is skipped rather than reported.
func (e *Engine) Evaluate(ctx context.Context, uid uuid.UUID) ([]entity.BadgeDefinition, error) {
	var (
		rules []Rule
		owned map[int]struct{}
		subs  []*entity.Subscription
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rules, err = e.loadRules(gctx)
		return err
	})
	g.Go(func() (err error) {
		owned, err = e.awards.ListOwned(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		subs, err = e.subs.ListByUserID(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := ComputeStats(subs, e.clock.Now())
	awarded := make([]entity.BadgeDefinition, 0)
	for _, rule := range rules {
		if _, ok := owned[rule.Badge.ID]; ok {
			continue
		}
		if !rule.Satisfied(stats) {
			continue
		}
		created, err := e.awards.CreateAward(ctx, uid, rule.Badge.ID)
		if err != nil {
			return nil, err
		}
		if !created {
			continue
		}
		metrics.BadgesAwardedTotal.Inc()
		awarded = append(awarded, rule.Badge)
	}
	return awarded, nil
}

// compile returns rules in definition id order. A condition is parsed when its
// definition is first loaded and again only after it changes.
func (e *Engine) compile(ctx context.Context, defs []entity.BadgeDefinition) []Rule {
	defs = slices.Clone(defs)
	slices.SortStableFunc(defs, func(a, b entity.BadgeDefinition) int { return a.ID - b.ID })

	e.mu.Lock()
	defer e.mu.Unlock()
	rules := make([]Rule, 0, len(defs))
	for _, def := range defs {
		cached, ok := e.rules[def.ID]
		if !ok || cached.raw != string(def.Condition) {
			cached = compiledRule{raw: string(def.Condition), rule: Compile(def)}
			e.rules[def.ID] = cached
			if cached.rule.Err != nil {
				logging.Ctx(ctx).Error().Err(cached.rule.Err).
					Int("badge_id", def.ID).
					Str("badge", def.Title).
					Msg("badge condition is malformed, badge will never be awarded")
			}
		}
		cached.rule.Badge = def
		rules = append(rules, cached.rule)
	}
	return rules
}
