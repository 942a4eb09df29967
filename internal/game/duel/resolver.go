package duel

import (
	"fmt"

	"go.uber.org/zap"
)

// Resolver drives duels to completion.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: logger must not be nil.
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Challenge fights initiator against opponent until one of them dies.
//
// Each round the initiator strikes first; the opponent strikes back only if
// still alive; then both process their troubles once. There is no round limit,
// so two duelists unable to hurt each other fight forever.
//
// When the duel ends the loser's whole purse moves to the winner, then the
// loser's and the winner's duel hooks fire with that amount. If both fall in
// the same round the initiator is the loser.
//
// Precondition: initiator != opponent; both alive.
// Postcondition: exactly one of Winner and Loser is alive unless both died in the
// final round; Loser.Money() == 0.
func (r *Resolver) Challenge(initiator, opponent Duelist) (Result, error) {
	if initiator == opponent {
		return Result{}, fmt.Errorf("duel: %s: %w", initiator, ErrSelfChallenge)
	}
	for _, d := range []Duelist{initiator, opponent} {
		if !d.IsAlive() {
			return Result{}, fmt.Errorf("duel: %s: %w", d, ErrNotAlive)
		}
	}

	r.logger.Info("duel started",
		zap.Stringer("initiator", initiator),
		zap.Stringer("initiator_weapon", initiator.Weapon()),
		zap.Stringer("opponent", opponent),
		zap.Stringer("opponent_weapon", opponent.Weapon()),
	)

	var res Result
	state := Ongoing
	for state == Ongoing {
		res.Rounds++
		if err := r.strike(&res, initiator, opponent); err != nil {
			return Result{}, err
		}
		if opponent.IsAlive() {
			if err := r.strike(&res, opponent, initiator); err != nil {
				return Result{}, err
			}
		}
		for _, d := range []Duelist{initiator, opponent} {
			if _, err := d.ProcessTroubles(); err != nil {
				return Result{}, fmt.Errorf("duel: %s: %w", d, err)
			}
		}

		r.logger.Debug("duel round",
			zap.Int("round", res.Rounds),
			zap.Int("initiator_life", initiator.Life()),
			zap.Int("opponent_life", opponent.Life()),
		)
		if !initiator.IsAlive() || !opponent.IsAlive() {
			state = Finished
		}
	}

	res.Winner, res.Loser = opponent, initiator
	if initiator.IsAlive() {
		res.Winner, res.Loser = initiator, opponent
		res.InitiatorWon = true
	}
	if err := r.settle(&res); err != nil {
		return Result{}, err
	}

	r.logger.Info("duel finished",
		zap.Stringer("winner", res.Winner),
		zap.Stringer("loser", res.Loser),
		zap.Int("amount", res.Amount),
		zap.Int("rounds", res.Rounds),
	)
	return res, nil
}

func (r *Resolver) strike(res *Result, attacker, defender Duelist) error {
	if err := attacker.UseWeaponOn(defender); err != nil {
		return fmt.Errorf("duel: %s striking %s: %w", attacker, defender, err)
	}
	s := Strike{
		Round:        res.Rounds,
		Attacker:     attacker,
		Defender:     defender,
		Weapon:       attacker.Weapon().Name(),
		DefenderLife: defender.Life(),
	}
	res.Strikes = append(res.Strikes, s)
	r.logger.Debug("strike",
		zap.Int("round", s.Round),
		zap.Stringer("attacker", attacker),
		zap.String("weapon", s.Weapon),
		zap.Stringer("defender", defender),
		zap.Int("defender_life", s.DefenderLife),
	)
	return nil
}

// settle moves the loser's purse to the winner, then fires the duel hooks.
func (r *Resolver) settle(res *Result) error {
	res.Amount = res.Loser.Money()
	if _, err := res.Loser.LoseMoney(res.Amount); err != nil {
		return fmt.Errorf("duel: settling %s: %w", res.Loser, err)
	}
	if _, err := res.Winner.EarnMoney(res.Amount); err != nil {
		return fmt.Errorf("duel: settling %s: %w", res.Winner, err)
	}
	res.Loser.LoseDuel(res.Amount)
	res.Winner.WinDuel(res.Amount)
	return nil
}
