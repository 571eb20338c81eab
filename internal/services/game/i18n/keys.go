package i18n

// Message keys. Each key is registered for every supported locale.
const (
	KeyWelcomeBack     = "start.welcome_back"
	KeySummoned        = "start.summoned"
	KeyRaceRequired    = "start.race_required"
	KeyUnknownRace     = "start.unknown_race"
	KeyDefaultPartner  = "start.default_partner"
	KeyDidYouMean      = "common.did_you_mean"
	KeyNoCompanion     = "common.no_companion"
	KeyVanished        = "vanish.vanished"
	KeyRevived         = "vanish.revived"
	KeyTransmuteLimit  = "limit.transmute"
	KeyCraftLimit      = "limit.craft"
	KeyExploreLimit    = "limit.explore"
	KeyMaterialsFull   = "inventory.materials_full"
	KeyItemsFull       = "inventory.items_full"
	KeyCatalystsLost   = "inventory.catalysts_lost"
	KeyUnknownMaterial = "transmute.unknown_material"
	KeyUnknownEssence  = "transmute.unknown_essence"
	KeyTransmuted      = "transmute.success"

	KeySelectMaterials   = "craft.select_materials"
	KeyDuplicateMaterial = "craft.duplicate_material"
	KeyUnknownCraftType  = "craft.unknown_type"
	KeyMaterialNotFound  = "craft.material_not_found"
	KeyCatalystNotFound  = "craft.catalyst_not_found"
	KeyCrafted           = "craft.success"
	KeyCraftFailed       = "craft.junk"
	KeyUnknownJunk       = "craft.unknown_junk"
	KeyGiftGiven         = "gift.given"
	KeyGenericGift       = "gift.generic"
	KeyReactionLike      = "gift.reaction_like"
	KeyReactionDislike   = "gift.reaction_dislike"
	KeyRankUp            = "progress.rank_up"

	KeyExploreVanished  = "explore.vanished"
	KeyDungeonNotFound  = "explore.dungeon_not_found"
	KeyRankTooLow       = "explore.rank_too_low"
	KeyBossDefeat       = "explore.boss_defeat"
	KeyBossWin          = "explore.boss_win"
	KeyTurnDefeat       = "explore.turn_defeat"
	KeyTurnWin          = "explore.turn_win"
	KeyTurnQuiet        = "explore.turn_quiet"
	KeyExploreFailed    = "explore.failed"
	KeyExploreEmpty     = "explore.empty"
	KeyExploreFewDrops  = "explore.few_drops"
	KeyExploreManyDrops = "explore.many_drops"
	KeySuggestNext      = "explore.suggest_next"

	KeyDebugDisabled        = "debug.disabled"
	KeyDebugResetDaily      = "debug.reset_daily"
	KeyDebugStateUpdated    = "debug.state_updated"
	KeyDebugForceVanish     = "debug.force_vanish"
	KeyDebugInvalidOverride = "debug.invalid_override"

	KeyNoteAffection = "render.affection"
	KeyNotePhase     = "render.phase"
	KeyNoteVanished  = "render.vanished"
	KeyNotePhaseUp   = "render.phase_up"
	KeyNoteRevived   = "render.revived"
)
