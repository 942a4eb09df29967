package world

import (
	"github.com/cory-johannsen/stoneandsaber/internal/config"
	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
)

// StandardEvents returns the stock events with probabilities from cfg. Making
// people live always comes last and fires every generation.
func StandardEvents(cfg config.FateConfig) []Event {
	return []Event{
		{Name: "Human drink", Probability: cfg.Drink, Apply: (*World).Drink},
		{Name: "Ronin challenge Yakuza", Probability: cfg.RoninChallenge, Apply: func(w *World) error {
			return w.Challenge(character.KindRonin, character.KindYakuza)
		}},
		{Name: "Yakuza challenge Ronin", Probability: cfg.YakuzaChallenge, Apply: func(w *World) error {
			return w.Challenge(character.KindYakuza, character.KindRonin)
		}},
		{Name: "Yakuza extort Merchant", Probability: cfg.YakuzaExtort, Apply: func(w *World) error {
			return w.Extort(character.KindYakuza)
		}},
		{Name: "Traitor extort Merchant", Probability: cfg.TraitorExtort, Apply: func(w *World) error {
			return w.Extort(character.KindTraitor)
		}},
		{Name: "Ronin donate to Merchant", Probability: cfg.RoninDonate, Apply: (*World).Donate},
		{Name: "Traitor make friend", Probability: cfg.TraitorBefriend, Apply: (*World).Befriend},
		{Name: "Make people live", Probability: 1, Apply: (*World).Live},
	}
}
