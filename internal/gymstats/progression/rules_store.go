package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

const rulesKey = "gymtracker||progression-rules"

var ErrInvalidRules = errors.New("invalid progression rules")

// RulesStore keeps the user progression rules in redis. Until the user saves
// their own, the defaults from the config are returned.
type RulesStore struct {
	redisClient *redis.Client
	defaults    Rules
}

func NewRulesStore(redisClient *redis.Client, defaults Rules) *RulesStore {
	return &RulesStore{
		redisClient: redisClient,
		defaults:    defaults,
	}
}

func (s *RulesStore) GetProgressionRules(ctx context.Context) (_ Rules, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.rules.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := s.redisClient.Get(ctx, rulesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return s.defaults, nil
	}
	if err != nil {
		return Rules{}, fmt.Errorf("get rules: %w", err)
	}

	var rules Rules
	if err := json.Unmarshal(raw, &rules); err != nil {
		log.Warnf("stored progression rules corrupted, using defaults: %s", err)
		return s.defaults, nil
	}
	return rules, nil
}

func (s *RulesStore) SaveProgressionRules(ctx context.Context, rules Rules) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.rules.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := Validate(rules); err != nil {
		return err
	}

	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}
	if err := s.redisClient.Set(ctx, rulesKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	return nil
}

func Validate(rules Rules) error {
	if !rules.SelectedModel.IsValid() {
		return fmt.Errorf("%w: unknown model [%s]", ErrInvalidRules, rules.SelectedModel)
	}
	if rules.LinearWeightIncrement < 0 || rules.DoubleProgressionWeightIncrement < 0 {
		return fmt.Errorf("%w: weight increments cannot be negative", ErrInvalidRules)
	}
	if rules.LinearRepsIncrement < 0 || rules.DoubleProgressionRepIncrement < 0 {
		return fmt.Errorf("%w: rep increments cannot be negative", ErrInvalidRules)
	}
	repRange := rules.DoubleProgressionRepRange
	if repRange != (RepRange{}) && !repRange.IsSet() {
		return fmt.Errorf("%w: rep range [%d, %d]", ErrInvalidRules, repRange.Min, repRange.Max)
	}
	return nil
}
