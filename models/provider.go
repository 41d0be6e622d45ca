package models

import "fmt"

// ProviderFamily groups game providers by product vertical.
type ProviderFamily string

const (
	FamilyLiveCasino   ProviderFamily = "live_casino"
	FamilyOnlineCasino ProviderFamily = "online_casino"
	FamilySlot         ProviderFamily = "slot"
	FamilyLottery      ProviderFamily = "lottery"
	FamilySportsbook   ProviderFamily = "sportsbook"
)

// GameProvider is the tag of one third-party gaming provider. The tag is
// also the suffix of that provider's live bet table, so it must stay a
// lowercase identifier with underscores only.
type GameProvider string

const (
	ProviderSexy            GameProvider = "sexy"
	ProviderPragmaticLive   GameProvider = "pragmatic"
	ProviderSALive          GameProvider = "sa"
	ProviderAGLive          GameProvider = "ag"
	ProviderDreamLive       GameProvider = "dream"
	ProviderWMLive          GameProvider = "wm_live_casino"
	ProviderKingmaker       GameProvider = "kingmaker"
	ProviderArcadia         GameProvider = "arcadia"
	ProviderEvoplayCasino   GameProvider = "evoplay_online_casino"
	ProviderJiliCasino      GameProvider = "jili_online_casino"
	ProviderPragmaticSlot   GameProvider = "pragmatic_slot"
	ProviderRoyalSlotGaming GameProvider = "royal_slot_gaming"
	ProviderAmeba           GameProvider = "ameba"
	ProviderRelax           GameProvider = "relax"
	ProviderYGG             GameProvider = "ygg_slot"
	ProviderHacksaw         GameProvider = "hacksaw"
	ProviderPGSlot          GameProvider = "pg_slot"
	ProviderHabaneroSlot    GameProvider = "habanero_slot"
	ProviderThaiLottery     GameProvider = "thailotto"
	ProviderLaoLottery      GameProvider = "laoslotto"
	ProviderHanoiLottery    GameProvider = "hanoylotto"
	ProviderYeekeeLottery   GameProvider = "yeekeelotto"
	ProviderSingleLive      GameProvider = "single_live"
	ProviderSingleNonLive   GameProvider = "single_non_live"
	ProviderCombo           GameProvider = "combo"
	ProviderParlay          GameProvider = "parlay"
)

var providerFamilies = map[GameProvider]ProviderFamily{
	ProviderSexy:            FamilyLiveCasino,
	ProviderPragmaticLive:   FamilyLiveCasino,
	ProviderSALive:          FamilyLiveCasino,
	ProviderAGLive:          FamilyLiveCasino,
	ProviderDreamLive:       FamilyLiveCasino,
	ProviderWMLive:          FamilyLiveCasino,
	ProviderKingmaker:       FamilyOnlineCasino,
	ProviderArcadia:         FamilyOnlineCasino,
	ProviderEvoplayCasino:   FamilyOnlineCasino,
	ProviderJiliCasino:      FamilyOnlineCasino,
	ProviderPragmaticSlot:   FamilySlot,
	ProviderRoyalSlotGaming: FamilySlot,
	ProviderAmeba:           FamilySlot,
	ProviderRelax:           FamilySlot,
	ProviderYGG:             FamilySlot,
	ProviderHacksaw:         FamilySlot,
	ProviderPGSlot:          FamilySlot,
	ProviderHabaneroSlot:    FamilySlot,
	ProviderThaiLottery:     FamilyLottery,
	ProviderLaoLottery:      FamilyLottery,
	ProviderHanoiLottery:    FamilyLottery,
	ProviderYeekeeLottery:   FamilyLottery,
	ProviderSingleLive:      FamilySportsbook,
	ProviderSingleNonLive:   FamilySportsbook,
	ProviderCombo:           FamilySportsbook,
	ProviderParlay:          FamilySportsbook,
}

// AllProviders returns every provider whose bet table the drain loop visits,
// in a stable order: live casino, online casino, slots, lottery, sportsbook.
func AllProviders() []GameProvider {
	return []GameProvider{
		ProviderSexy, ProviderPragmaticLive, ProviderSALive, ProviderAGLive,
		ProviderDreamLive, ProviderWMLive,
		ProviderKingmaker, ProviderArcadia, ProviderEvoplayCasino, ProviderJiliCasino,
		ProviderPragmaticSlot, ProviderRoyalSlotGaming, ProviderAmeba, ProviderRelax,
		ProviderYGG, ProviderHacksaw, ProviderPGSlot, ProviderHabaneroSlot,
		ProviderThaiLottery, ProviderLaoLottery, ProviderHanoiLottery, ProviderYeekeeLottery,
		ProviderSingleLive, ProviderSingleNonLive, ProviderCombo, ProviderParlay,
	}
}

// Family returns the product vertical the provider belongs to.
func (p GameProvider) Family() ProviderFamily {
	return providerFamilies[p]
}

// BetTable returns the name of the provider's live bet table.
func (p GameProvider) BetTable() string {
	return fmt.Sprintf("bet_%s", string(p))
}

func (p GameProvider) String() string {
	return string(p)
}
