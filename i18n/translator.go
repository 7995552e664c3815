package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unknown_reference":
			return "未解決の参照です"
		case "instantiation_failure":
			return "インスタンス化に失敗しました"
		case "field_access_failure":
			return "フィールドへの値設定に失敗しました"
		case "array_element_mismatch":
			return "配列要素の型が一致しません"
		case "root_type_mismatch":
			return "ルート型が一致しません"
		case "corrupt_node":
			return "ノードが破損しています"
		case "invalid_type":
			return "型が不正です"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "invalid_format":
			return "形式が不正です"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		case "dependency_unavailable":
			return "依存先サービスが利用できません"
		}
	default: // "en"
		switch code {
		case "unknown_reference":
			return "reference to an unknown id"
		case "instantiation_failure":
			return "failed to instantiate target type"
		case "field_access_failure":
			return "failed to set value on field"
		case "array_element_mismatch":
			return "array element type mismatch"
		case "root_type_mismatch":
			return "root value type mismatch"
		case "corrupt_node":
			return "corrupt node"
		case "invalid_type":
			return "invalid type"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "invalid_format":
			return "invalid format"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		case "dependency_unavailable":
			return "dependency unavailable"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
