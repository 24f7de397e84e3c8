package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battleskill/internal/model"
)

// Resolution — одна запись журнала: исход скилла в конкретном ходе боя.
type Resolution struct {
	ID        int64
	BattleID  string
	Turn      int32
	Attacker  string
	Defender  string
	Seed      uint64
	Outcome   model.Outcome
	CreatedAt time.Time
}

// SkillSummary aggregates logged outcomes of one skill.
type SkillSummary struct {
	SkillID       string
	Count         int64
	AvgMagnitude  float64
	SecondaryRate float64
	StatusRate    float64
}

// ResolutionRepository управляет журналом исходов скиллов в БД.
type ResolutionRepository struct {
	db *pgxpool.Pool
}

// NewResolutionRepository создаёт новый ResolutionRepository.
func NewResolutionRepository(db *pgxpool.Pool) *ResolutionRepository {
	return &ResolutionRepository{db: db}
}

const insertResolution = `
	INSERT INTO skill_resolutions
		(battle_id, turn, skill_id, attacker, defender, kind, magnitude, power,
		 secondary, status_effect, status_triggered, status_chance, status_duration, seed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING id, created_at
`

func resolutionArgs(r *Resolution) []any {
	var (
		effect           *string
		triggered        bool
		chance, duration int32
	)
	if s := r.Outcome.Status; s != nil {
		e := string(s.Effect)
		effect = &e
		triggered = s.Triggered
		chance = s.Chance
		duration = s.Duration
	}
	return []any{
		r.BattleID, r.Turn, r.Outcome.Skill, r.Attacker, r.Defender,
		r.Outcome.Kind.String(), r.Outcome.Magnitude, r.Outcome.Power,
		r.Outcome.Secondary, effect, triggered, chance, duration, int64(r.Seed),
	}
}

// Save сохраняет одну запись и заполняет ID и CreatedAt.
func (r *ResolutionRepository) Save(ctx context.Context, res *Resolution) error {
	err := r.db.QueryRow(ctx, insertResolution, resolutionArgs(res)...).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving resolution %s/%s turn %d: %w", res.BattleID, res.Outcome.Skill, res.Turn, err)
	}
	return nil
}

// SaveBatch сохраняет несколько записей одним pgx.Batch.
func (r *ResolutionRepository) SaveBatch(ctx context.Context, items []*Resolution) (err error) {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, res := range items {
		batch.Queue(insertResolution, resolutionArgs(res)...)
	}

	br := r.db.SendBatch(ctx, batch)
	defer func() {
		if cerr := br.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing resolution batch: %w", cerr)
		}
	}()

	for _, res := range items {
		if err := br.QueryRow().Scan(&res.ID, &res.CreatedAt); err != nil {
			return fmt.Errorf("saving resolution batch: %w", err)
		}
	}
	return nil
}

// ListByBattle загружает все записи боя в порядке ходов.
func (r *ResolutionRepository) ListByBattle(ctx context.Context, battleID string) ([]*Resolution, error) {
	query := `
		SELECT id, battle_id, turn, skill_id, attacker, defender, kind, magnitude, power,
		       secondary, status_effect, status_triggered, status_chance, status_duration,
		       seed, created_at
		FROM skill_resolutions
		WHERE battle_id = $1
		ORDER BY turn, id
	`

	rows, err := r.db.Query(ctx, query, battleID)
	if err != nil {
		return nil, fmt.Errorf("querying resolutions for battle %s: %w", battleID, err)
	}
	defer rows.Close()

	result := make([]*Resolution, 0, 16)
	for rows.Next() {
		var (
			res              Resolution
			kind             string
			effect           *string
			triggered        bool
			chance, duration int32
			seed             int64
		)
		if err := rows.Scan(
			&res.ID, &res.BattleID, &res.Turn, &res.Outcome.Skill, &res.Attacker, &res.Defender,
			&kind, &res.Outcome.Magnitude, &res.Outcome.Power, &res.Outcome.Secondary,
			&effect, &triggered, &chance, &duration, &seed, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning resolution row: %w", err)
		}

		res.Seed = uint64(seed)
		res.Outcome.Kind = parseKind(kind)
		if effect != nil {
			res.Outcome.Status = &model.StatusSignal{
				Effect:    model.StatusEffect(*effect),
				Chance:    chance,
				Triggered: triggered,
				Duration:  duration,
			}
		}
		result = append(result, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resolution rows: %w", err)
	}

	return result, nil
}

// Summary агрегирует журнал по одному скиллу.
func (r *ResolutionRepository) Summary(ctx context.Context, skillID string) (SkillSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(magnitude), 0)::float8,
		       COALESCE(AVG(CASE WHEN secondary THEN 1 ELSE 0 END), 0)::float8,
		       COALESCE(AVG(CASE WHEN status_triggered THEN 1 ELSE 0 END), 0)::float8
		FROM skill_resolutions
		WHERE skill_id = $1
	`

	s := SkillSummary{SkillID: skillID}
	if err := r.db.QueryRow(ctx, query, skillID).Scan(&s.Count, &s.AvgMagnitude, &s.SecondaryRate, &s.StatusRate); err != nil {
		return SkillSummary{}, fmt.Errorf("summarizing skill %s: %w", skillID, err)
	}
	return s, nil
}

// DeleteBattle удаляет журнал боя. Возвращает число удалённых записей.
func (r *ResolutionRepository) DeleteBattle(ctx context.Context, battleID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM skill_resolutions WHERE battle_id = $1`, battleID)
	if err != nil {
		return 0, fmt.Errorf("deleting resolutions for battle %s: %w", battleID, err)
	}
	return tag.RowsAffected(), nil
}

func parseKind(s string) model.OutcomeKind {
	switch s {
	case "heal":
		return model.OutcomeHeal
	case "status":
		return model.OutcomeStatus
	default:
		return model.OutcomeDamage
	}
}
