package usecase

import (
	"strings"

	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

// Replies shown to Slack users
const (
	msgUsage = "USAGE: `/qa-info [auth|message|logout|help]`"

	msgHelp = msgUsage + "\nデフォルトでは、 `{名前}です。` とメッセージの頭につける設定になっています。" +
		"\n `/qa-info auth` (認証リンクを生成する) " +
		"\n `/qa-info message` ( デフォルトメッセージを確認する) " +
		"\n `/qa-info message [hoge]` (デフォルトメッセージをhogeの内容で設定する) " +
		"\n 認証後はメッセージショートカットからモーダルを起動することができます。(:対応中:, :対応済2:などが付けられているメッセージには反応しません"

	msgAuthFormat          = ":point_right:  <%s|Click here!!>  :point_left:"
	msgNotRegistered       = "登録されていません。"
	msgNotRegisteredHint   = "登録されていません。 /qa-info auth　と入力してください。"
	msgPreMessageSetFormat = "デフォルトメッセージを\n> %s\nに設定しました。"
	msgPreMessageFormat    = "あなたのデフォルトメッセージは\n> %s\nです。"
	msgLogout              = "まだログアウト機能は実装されていません。"
	msgCommandError        = "ERROR: can't parse command.\n" + msgUsage

	msgShortcutNotAuthorized = "アクセストークンによる認可が行われていないので、使用できません。\n Slackの入力欄に `/qa-info auth` と入力し、現れたリンクを使って認可してください。"

	msgBlockedBeforeOpen = "　のいずれかのリアクションがついているメッセージなので、DMに送信することはできません。"
	msgBlockedAtSubmit   = "　のいずれかのリアクションがついているメッセージなので、DMに送信することはできませんでした。"

	// MsgOAuthCompleted is the body of /oauth on success
	MsgOAuthCompleted = "認証が完了しました。"
	// MsgOAuthFailed is the body of /oauth on any failure
	MsgOAuthFailed = "認証エラー"

	// Modal texts
	modalTitle           = "DMに引用送信する"
	modalSubmit          = "Submit"
	modalClose           = "Cancel"
	modalPreMessageLabel = "メッセージ"
	modalRecipientLabel  = "共有先"
	modalRecipientHolder = "Select an item"
)

// blockedMessage lists the marker reactions as emoji followed by the reason
func blockedMessage(markers []types.ReactionName, reason string) string {
	emojis := make([]string, 0, len(markers))
	for _, m := range markers {
		emojis = append(emojis, m.Emoji())
	}
	return strings.Join(emojis, " ") + reason
}
