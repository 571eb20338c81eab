package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Japanese

	message.SetString(lang, KeyWelcomeBack, "おかえり。%sが待っていたよ。")
	message.SetString(lang, KeySummoned, "%sが召喚された。一緒にゼニスフォールを救おう。")
	message.SetString(lang, KeyRaceRequired, "種族を選択してください（%s）")
	message.SetString(lang, KeyUnknownRace, "不明な種族: %s")
	message.SetString(lang, KeyDefaultPartner, "相棒")
	message.SetString(lang, KeyDidYouMean, "%s（もしかして: %s）")
	message.SetString(lang, KeyNoCompanion, "まだ相棒がいません。start_runで始めてください")
	message.SetString(lang, KeyVanished, "……%sの姿が見えない。%d日間会いに来なかったから、存在が薄れてしまった。")
	message.SetString(lang, KeyRevived, "「……もっと会いに来て。怖い思いした」%sの輪郭が戻ってきた。")
	message.SetString(lang, KeyTransmuteLimit, "今日の写真転生回数上限（%d回）に達しました")
	message.SetString(lang, KeyCraftLimit, "今日の錬金回数上限（%d回）に達しました")
	message.SetString(lang, KeyExploreLimit, "今日の探索回数上限（%d回）に達しました")
	message.SetString(lang, KeyMaterialsFull, "素材の所持上限（%d個）に達しています")
	message.SetString(lang, KeyItemsFull, "アイテムの所持上限（%d個）に達しています")
	message.SetString(lang, KeyCatalystsLost, "触媒の所持上限のため%d個を持ち帰れなかった。")
	message.SetString(lang, KeyUnknownMaterial, "不明な材質: %s")
	message.SetString(lang, KeyUnknownEssence, "不明な概念: %s")
	message.SetString(lang, KeyTransmuted, "「%s」の素材を手に入れた！（%s）")

	message.SetString(lang, KeySelectMaterials, "素材を選択してください")
	message.SetString(lang, KeyDuplicateMaterial, "同じ素材が複数回選択されています: %s")
	message.SetString(lang, KeyUnknownCraftType, "不明な錬金タイプ: %s（normal/gift）")
	message.SetString(lang, KeyMaterialNotFound, "素材が見つかりません: %s")
	message.SetString(lang, KeyCatalystNotFound, "触媒が見つかりません: %s")
	message.SetString(lang, KeyCrafted, "「%s」を錬成した！")
	message.SetString(lang, KeyCraftFailed, "錬金失敗……「%s」ができた。")
	message.SetString(lang, KeyUnknownJunk, "謎のガラクタ")
	message.SetString(lang, KeyGiftGiven, "「%s」を%sに贈った。%s")
	message.SetString(lang, KeyGenericGift, "手作りの贈り物")
	message.SetString(lang, KeyReactionLike, "ありがとう！すごく嬉しい")
	message.SetString(lang, KeyReactionDislike, "……ありがとう")
	message.SetString(lang, KeyRankUp, "ランクアップ！%s（ランク%d）になった。")

	message.SetString(lang, KeyExploreVanished, "%sの姿が見えない……探索はできない。まず存在を取り戻して。")
	message.SetString(lang, KeyDungeonNotFound, "ダンジョンが見つかりません: %s")
	message.SetString(lang, KeyRankTooLow, "ランク%d以上が必要です（現在: %d）")
	message.SetString(lang, KeyBossDefeat, "ボス戦で敗北……撤退を余儀なくされた。")
	message.SetString(lang, KeyBossWin, "ボスを撃破！")
	message.SetString(lang, KeyTurnDefeat, "Turn%dで敵に敗北……撤退。")
	message.SetString(lang, KeyTurnWin, "Turn%d: 敵を撃破！")
	message.SetString(lang, KeyTurnQuiet, "Turn%d: 順調に進行中……")
	message.SetString(lang, KeyExploreFailed, "探索失敗……無事に戻れただけでも幸運だ。")
	message.SetString(lang, KeyExploreEmpty, "探索成功！でも何も見つからなかった……")
	message.SetString(lang, KeyExploreFewDrops, "探索成功！「%s」を手に入れた！")
	message.SetString(lang, KeyExploreManyDrops, "探索成功！「%s」など%d個の触媒を手に入れた！")
	message.SetString(lang, KeySuggestNext, "「%s」っぽい写真を撮ってきて。")

	message.SetString(lang, KeyDebugDisabled, "デバッグモードではありません")
	message.SetString(lang, KeyDebugResetDaily, "日次カウンターをリセットしました")
	message.SetString(lang, KeyDebugStateUpdated, "状態を更新しました")
	message.SetString(lang, KeyDebugForceVanish, "相棒を消失状態にしました")
	message.SetString(lang, KeyDebugInvalidOverride, "不正な状態指定: %s")

	message.SetString(lang, KeyNoteAffection, "（好感度: %.1f）")
	message.SetString(lang, KeyNotePhase, "（Phase: %d）")
	message.SetString(lang, KeyNoteVanished, "⚠️ 相棒が消失状態です")
	message.SetString(lang, KeyNotePhaseUp, "🎉 Phaseが上がった！")
	message.SetString(lang, KeyNoteRevived, "✨ %s")
}
