package skill

import (
	"fmt"
	"slices"
	"sync"

	"github.com/udisondev/battleskill/internal/data"
	"github.com/udisondev/battleskill/internal/game/formula"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/model"
)

// kindFactories maps a record kind to the constructor of its resolver variant.
// The set of variants is closed; adding a variant means adding a kind here.
var kindFactories = map[data.Kind]func(def data.SkillDefinition) (Resolver, error){
	data.KindFixed:      newFixedPower,
	data.KindSpeedRatio: newSpeedRatio,
	data.KindHPRatio:    newHPRatio,
	data.KindStatus:     newStatusInflict,
	data.KindHeal:       newHeal,
}

// FromDefinition builds the resolver for one skill record.
func FromDefinition(def data.SkillDefinition) (Resolver, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	factory, ok := kindFactories[def.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no resolver for kind %q", data.ErrInvalidDefinition, def.ID, def.Kind)
	}
	return factory(def)
}

func displayName(def data.SkillDefinition) string {
	if def.Name != "" {
		return def.Name
	}
	return def.ID
}

func newFixedPower(def data.SkillDefinition) (Resolver, error) {
	s := &FixedPower{
		ID:          def.ID,
		DisplayName: displayName(def),
		Power:       def.Power,
		Defense:     def.DefenseStat,
	}
	if def.Secondary != nil {
		s.Secondary = formula.Secondary{
			Chance:     def.Secondary.Chance,
			Multiplier: def.Secondary.Multiplier,
			Label:      def.Secondary.Label,
		}
	}
	return s, nil
}

func newSpeedRatio(def data.SkillDefinition) (Resolver, error) {
	return &SpeedRatio{
		ID:          def.ID,
		DisplayName: displayName(def),
		Tiers:       slices.Clone(def.Tiers),
		Defense:     def.DefenseStat,
	}, nil
}

func newHPRatio(def data.SkillDefinition) (Resolver, error) {
	return &HPRatio{
		ID:          def.ID,
		DisplayName: displayName(def),
		MaxPower:    def.MaxPower,
		Defense:     def.DefenseStat,
	}, nil
}

func newStatusInflict(def data.SkillDefinition) (Resolver, error) {
	effect := model.StatusEffect(def.Status.Effect)
	if !effect.Valid() {
		return nil, fmt.Errorf("%w: %s: unknown status effect %q", data.ErrInvalidDefinition, def.ID, def.Status.Effect)
	}
	return &StatusInflict{
		ID:          def.ID,
		DisplayName: displayName(def),
		Effect:      effect,
		Chance:      def.Status.Chance,
		Duration:    def.Status.Duration,
	}, nil
}

func newHeal(def data.SkillDefinition) (Resolver, error) {
	return &Heal{
		ID:          def.ID,
		DisplayName: displayName(def),
		Fraction:    def.HealFraction,
	}, nil
}

// Registry maps skill ID → resolver. Built once, then read-only;
// lookups are safe from any goroutine.
type Registry struct {
	resolvers map[string]Resolver
	defs      map[string]data.SkillDefinition
}

// NewRegistry builds a registry from skill records.
func NewRegistry(defs []data.SkillDefinition) (*Registry, error) {
	r := &Registry{
		resolvers: make(map[string]Resolver, len(defs)),
		defs:      make(map[string]data.SkillDefinition, len(defs)),
	}
	for _, def := range defs {
		res, err := FromDefinition(def)
		if err != nil {
			return nil, err
		}
		if err := r.Register(res); err != nil {
			return nil, err
		}
		r.defs[def.ID] = def
	}
	return r, nil
}

// Register adds a resolver. Duplicate IDs are rejected.
func (r *Registry) Register(res Resolver) error {
	if r.resolvers == nil {
		r.resolvers = make(map[string]Resolver)
	}
	if _, ok := r.resolvers[res.Name()]; ok {
		return fmt.Errorf("skill %q already registered", res.Name())
	}
	r.resolvers[res.Name()] = res
	return nil
}

// Lookup returns the resolver for id.
func (r *Registry) Lookup(id string) (Resolver, error) {
	res, ok := r.resolvers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, id)
	}
	return res, nil
}

// Definition returns the record a resolver was built from, if any.
func (r *Registry) Definition(id string) (data.SkillDefinition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// IDs returns registered skill IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.resolvers))
	for id := range r.resolvers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Resolve looks up id and resolves it.
func (r *Registry) Resolve(id string, attacker, defender model.Snapshot, src rng.Source, tr Tracer) (model.Outcome, error) {
	res, err := r.Lookup(id)
	if err != nil {
		return model.Outcome{}, err
	}
	return res.Resolve(attacker, defender, src, tr)
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	defs, err := data.BuiltinSkills()
	if err != nil {
		return nil, fmt.Errorf("loading builtin skills: %w", err)
	}
	return NewRegistry(defs)
})

// DefaultRegistry returns the registry of built-in skills.
func DefaultRegistry() (*Registry, error) {
	return defaultRegistry()
}
