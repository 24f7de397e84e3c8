package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/battleskill/internal/db"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/game/simulate"
	"github.com/udisondev/battleskill/internal/game/skill"
	"github.com/udisondev/battleskill/internal/model"
)

func (a *app) list() error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tTYPE\tPOWER\tDEFENSE\tEFFECT")
	for _, id := range a.registry.IDs() {
		def, ok := a.registry.Definition(id)
		if !ok {
			fmt.Fprintf(w, "%s\t\t\t\t\t\t\n", id)
			continue
		}
		power := "-"
		switch {
		case def.Power > 0:
			power = fmt.Sprint(def.Power)
		case def.MaxPower > 0:
			power = fmt.Sprintf("<=%d", def.MaxPower)
		case len(def.Tiers) > 0:
			power = fmt.Sprintf("%d-%d", def.Tiers[len(def.Tiers)-1].Power, def.Tiers[0].Power)
		}
		effect := "-"
		switch {
		case def.Secondary != nil:
			effect = fmt.Sprintf("%s %d%% x%.1f", def.Secondary.Label, def.Secondary.Chance, def.Secondary.Multiplier)
		case def.Status != nil:
			effect = fmt.Sprintf("%s %d%%", def.Status.Effect, def.Status.Chance)
		case def.HealFraction > 0:
			effect = fmt.Sprintf("heal %.0f%%", def.HealFraction*100)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			id, def.Name, def.Kind, def.Type, power, def.DefenseStat, effect)
	}
	return w.Flush()
}

// combatantFlags are shared by resolve and simulate.
type combatantFlags struct {
	skillID  string
	attacker string
	defender string
	seed     uint64
}

func (c *combatantFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.skillID, "skill", "", "skill id (see list)")
	fs.StringVar(&c.attacker, "attacker", "", "attacker YAML file (default: demo Pikachu)")
	fs.StringVar(&c.defender, "defender", "", "defender YAML file (default: demo Charmander)")
	fs.Uint64Var(&c.seed, "seed", 0, "random seed (0 = config seed)")
}

func (c *combatantFlags) load() (model.Snapshot, model.Snapshot, error) {
	if c.skillID == "" {
		return model.Snapshot{}, model.Snapshot{}, errors.New("-skill is required")
	}
	attacker, err := loadCombatant(c.attacker, demoAttacker)
	if err != nil {
		return model.Snapshot{}, model.Snapshot{}, fmt.Errorf("attacker: %w", err)
	}
	defender, err := loadCombatant(c.defender, demoDefender)
	if err != nil {
		return model.Snapshot{}, model.Snapshot{}, fmt.Errorf("defender: %w", err)
	}
	return attacker, defender, nil
}

func (a *app) resolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var (
		cf       combatantFlags
		battleID string
		turn     int
		trace    bool
	)
	cf.register(fs)
	fs.StringVar(&battleID, "battle", "", "battle id; derives a replayable seed with -turn")
	fs.IntVar(&turn, "turn", 0, "turn number within -battle")
	fs.BoolVar(&trace, "trace", false, "print trace lines")
	if err := fs.Parse(args); err != nil {
		return err
	}

	attacker, defender, err := cf.load()
	if err != nil {
		return err
	}

	seed := a.cfg.Seed
	switch {
	case cf.seed != 0:
		seed = cf.seed
	case battleID != "":
		seed = rng.SeedFor(battleID, turn)
	}

	rec := &skill.Recorder{}
	tr := skill.Multi{rec, skill.NewSlogTracer(nil)}
	out, err := a.registry.Resolve(cf.skillID, attacker, defender, rng.New(seed), tr)
	if err != nil {
		// The engine treats an invalid resolution as a failed no-op move.
		slog.Warn("skill resolution failed", "skill", cf.skillID, "err", err)
		return err
	}
	if trace {
		for _, line := range rec.Lines() {
			fmt.Fprintln(a.out, line)
		}
	}
	printOutcome(a.out, out)

	if a.cfg.RecordOutcomes {
		if battleID == "" {
			battleID = "adhoc"
		}
		if err := a.record(ctx, &db.Resolution{
			BattleID: battleID,
			Turn:     int32(turn),
			Attacker: attacker.Name(),
			Defender: defender.Name(),
			Seed:     seed,
			Outcome:  out,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) record(ctx context.Context, res *db.Resolution) error {
	dsn := a.cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Resolutions().Save(ctx, res); err != nil {
		return err
	}
	slog.Info("resolution recorded", "id", res.ID, "battle", res.BattleID, "turn", res.Turn)
	return nil
}

func (a *app) simulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var (
		cf      combatantFlags
		trials  int
		workers int
	)
	cf.register(fs)
	fs.IntVar(&trials, "trials", a.cfg.Simulation.Trials, "number of resolutions")
	fs.IntVar(&workers, "workers", a.cfg.Simulation.Workers, "parallel workers (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	attacker, defender, err := cf.load()
	if err != nil {
		return err
	}
	res, err := a.registry.Lookup(cf.skillID)
	if err != nil {
		return err
	}

	seed := a.cfg.Seed
	if cf.seed != 0 {
		seed = cf.seed
	}

	report, err := simulate.Run(ctx, simulate.Request{
		Resolver: res,
		Attacker: attacker,
		Defender: defender,
		Trials:   trials,
		Workers:  workers,
		Seed:     seed,
	})
	if err != nil {
		return fmt.Errorf("simulating %s: %w", cf.skillID, err)
	}

	printReport(a.out, report)
	return nil
}

func printOutcome(w io.Writer, o model.Outcome) {
	fmt.Fprintf(w, "skill=%s kind=%s magnitude=%d power=%d secondary=%t",
		o.Skill, o.Kind, o.Magnitude, o.Power, o.Secondary)
	if s := o.Status; s != nil {
		fmt.Fprintf(w, " status=%s chance=%d triggered=%t duration=%d",
			s.Effect, s.Chance, s.Triggered, s.Duration)
	}
	fmt.Fprintln(w)
}

func printReport(w io.Writer, r simulate.Report) {
	fmt.Fprintf(w, "skill=%s trials=%d min=%d max=%d mean=%.2f secondary_rate=%.4f status_rate=%.4f\n",
		r.Skill, r.Trials, r.Min, r.Max, r.Mean, r.SecondaryRate, r.StatusRate)

	keys := make([]int32, 0, len(r.MagnitudeCount))
	for k := range r.MagnitudeCount {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %5d  %d\n", k, r.MagnitudeCount[k])
	}
}

var (
	demoAttacker = model.NewSnapshot("Pikachu", 100, 100, 55, 40, 50, 90)
	demoDefender = model.NewSnapshot("Charmander", 110, 110, 52, 43, 50, 65)
)

func loadCombatant(path string, fallback model.Snapshot) (model.Snapshot, error) {
	if path == "" {
		return fallback, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var rec model.StatRecord
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec.Snapshot()
}
