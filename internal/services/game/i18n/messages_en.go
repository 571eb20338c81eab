package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, KeyWelcomeBack, "Welcome back. %s has been waiting for you.")
	message.SetString(lang, KeySummoned, "%s has been summoned. Let's save Zenithfall together.")
	message.SetString(lang, KeyRaceRequired, "Choose a race (%s).")
	message.SetString(lang, KeyUnknownRace, "Unknown race: %s")
	message.SetString(lang, KeyDefaultPartner, "Partner")
	message.SetString(lang, KeyDidYouMean, "%s (did you mean %s?)")
	message.SetString(lang, KeyNoCompanion, "You have no companion yet. Call start_run first.")
	message.SetString(lang, KeyVanished, "...%s is nowhere to be seen. After %d days apart, their presence has faded.")
	message.SetString(lang, KeyRevived, "\"...Come see me more often. I was scared.\" %s's outline returns.")
	message.SetString(lang, KeyTransmuteLimit, "You have reached today's photo transmutation limit (%d).")
	message.SetString(lang, KeyCraftLimit, "You have reached today's crafting limit (%d).")
	message.SetString(lang, KeyExploreLimit, "You have reached today's exploration limit (%d).")
	message.SetString(lang, KeyMaterialsFull, "Your material pouch is full (%d).")
	message.SetString(lang, KeyItemsFull, "Your item bag is full (%d).")
	message.SetString(lang, KeyCatalystsLost, "%d catalysts were left behind because your pouch is full.")
	message.SetString(lang, KeyUnknownMaterial, "Unknown material: %s")
	message.SetString(lang, KeyUnknownEssence, "Unknown essence: %s")
	message.SetString(lang, KeyTransmuted, "Obtained a %s material! (%s)")

	message.SetString(lang, KeySelectMaterials, "Select at least one material.")
	message.SetString(lang, KeyDuplicateMaterial, "Material selected more than once: %s")
	message.SetString(lang, KeyUnknownCraftType, "Unknown craft type: %s (normal/gift)")
	message.SetString(lang, KeyMaterialNotFound, "Material not found: %s")
	message.SetString(lang, KeyCatalystNotFound, "Catalyst not found: %s")
	message.SetString(lang, KeyCrafted, "Crafted %s!")
	message.SetString(lang, KeyCraftFailed, "The alchemy fizzled... you made %s.")
	message.SetString(lang, KeyUnknownJunk, "Mysterious Junk")
	message.SetString(lang, KeyGiftGiven, "You gave %s to %s. %s")
	message.SetString(lang, KeyGenericGift, "Handmade Gift")
	message.SetString(lang, KeyReactionLike, "Thank you! I'm so happy.")
	message.SetString(lang, KeyReactionDislike, "...Thanks.")
	message.SetString(lang, KeyRankUp, "Rank up! You are now %s (rank %d).")

	message.SetString(lang, KeyExploreVanished, "%s is nowhere to be seen... you cannot explore. Bring them back first.")
	message.SetString(lang, KeyDungeonNotFound, "Dungeon not found: %s")
	message.SetString(lang, KeyRankTooLow, "Rank %d or higher is required (current: %d).")
	message.SetString(lang, KeyBossDefeat, "Defeated in the boss battle... forced to retreat.")
	message.SetString(lang, KeyBossWin, "Boss defeated!")
	message.SetString(lang, KeyTurnDefeat, "Turn %d: defeated by an enemy... retreating.")
	message.SetString(lang, KeyTurnWin, "Turn %d: enemy defeated!")
	message.SetString(lang, KeyTurnQuiet, "Turn %d: pressing on smoothly...")
	message.SetString(lang, KeyExploreFailed, "Exploration failed... making it back at all was lucky.")
	message.SetString(lang, KeyExploreEmpty, "Exploration succeeded! But nothing was found...")
	message.SetString(lang, KeyExploreFewDrops, "Exploration succeeded! Obtained %s!")
	message.SetString(lang, KeyExploreManyDrops, "Exploration succeeded! Obtained %s and more, %d catalysts in total!")
	message.SetString(lang, KeySuggestNext, "Bring me a photo that feels like \"%s\".")

	message.SetString(lang, KeyDebugDisabled, "Debug mode is not enabled.")
	message.SetString(lang, KeyDebugResetDaily, "Daily counters have been reset.")
	message.SetString(lang, KeyDebugStateUpdated, "State updated.")
	message.SetString(lang, KeyDebugForceVanish, "Your companion is now vanished.")
	message.SetString(lang, KeyDebugInvalidOverride, "Invalid state override: %s")

	message.SetString(lang, KeyNoteAffection, "(Affection: %.1f)")
	message.SetString(lang, KeyNotePhase, "(Phase: %d)")
	message.SetString(lang, KeyNoteVanished, "⚠️ Your companion has vanished")
	message.SetString(lang, KeyNotePhaseUp, "🎉 Phase up!")
	message.SetString(lang, KeyNoteRevived, "✨ %s")
}
