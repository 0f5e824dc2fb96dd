package content

// KanaCard is one hiragana card: the kana itself, an example word
// written in hiragana, its kanji form, and an emoji illustration.
type KanaCard struct {
	Kana  string
	Word  string
	Kanji string
	Emoji string
}

// KanaRow is a selectable hiragana row (gojūon row).
type KanaRow struct {
	ID    string
	Label string
	Kanas []string
}

// KanaRows lists the selectable rows. "all" means the whole syllabary.
var KanaRows = []KanaRow{
	{ID: "all", Label: "すべて"},
	{ID: "a", Label: "あ行", Kanas: []string{"あ", "い", "う", "え", "お"}},
	{ID: "ka", Label: "か行", Kanas: []string{"か", "き", "く", "け", "こ"}},
	{ID: "sa", Label: "さ行", Kanas: []string{"さ", "し", "す", "せ", "そ"}},
	{ID: "ta", Label: "た行", Kanas: []string{"た", "ち", "つ", "て", "と"}},
	{ID: "na", Label: "な行", Kanas: []string{"な", "に", "ぬ", "ね", "の"}},
	{ID: "ha", Label: "は行", Kanas: []string{"は", "ひ", "ふ", "へ", "ほ"}},
	{ID: "ma", Label: "ま行", Kanas: []string{"ま", "み", "む", "め", "も"}},
	{ID: "ya", Label: "や行", Kanas: []string{"や", "ゆ", "よ"}},
	{ID: "ra", Label: "ら行", Kanas: []string{"ら", "り", "る", "れ", "ろ"}},
	{ID: "wa", Label: "わ行", Kanas: []string{"わ", "を", "ん"}},
}

// Hiragana is the full card table, one card per kana.
var Hiragana = []KanaCard{
	{"あ", "あり", "蟻", "🐜"},
	{"い", "いぬ", "犬", "🐕"},
	{"う", "うし", "牛", "🐄"},
	{"え", "えび", "海老", "🦐"},
	{"お", "おに", "鬼", "👹"},
	{"か", "かに", "蟹", "🦀"},
	{"き", "きつね", "狐", "🦊"},
	{"く", "くま", "熊", "🐻"},
	{"け", "けむし", "毛虫", "🐛"},
	{"こ", "こあら", "コアラ", "🐨"},
	{"さ", "さる", "猿", "🐵"},
	{"し", "しか", "鹿", "🦌"},
	{"す", "すいか", "西瓜", "🍉"},
	{"せ", "せんす", "扇子", "🪭"},
	{"そ", "そら", "空", "🌤️"},
	{"た", "たこ", "蛸", "🐙"},
	{"ち", "ちょう", "蝶", "🦋"},
	{"つ", "つき", "月", "🌙"},
	{"て", "てんとうむし", "天道虫", "🐞"},
	{"と", "とら", "虎", "🐯"},
	{"な", "なす", "茄子", "🍆"},
	{"に", "にわとり", "鶏", "🐔"},
	{"ぬ", "ぬいぐるみ", "縫いぐるみ", "🧸"},
	{"ね", "ねこ", "猫", "🐱"},
	{"の", "のり", "海苔", "🍙"},
	{"は", "はな", "花", "🌸"},
	{"ひ", "ひよこ", "雛", "🐤"},
	{"ふ", "ふくろう", "梟", "🦉"},
	{"へ", "へび", "蛇", "🐍"},
	{"ほ", "ほし", "星", "⭐"},
	{"ま", "まめ", "豆", "🫘"},
	{"み", "みかん", "蜜柑", "🍊"},
	{"む", "むし", "虫", "🐛"},
	{"め", "め", "目", "👁️"},
	{"も", "もも", "桃", "🍑"},
	{"や", "やま", "山", "⛰️"},
	{"ゆ", "ゆき", "雪", "❄️"},
	{"よ", "よっと", "ヨット", "⛵"},
	{"ら", "らいおん", "ライオン", "🦁"},
	{"り", "りんご", "林檎", "🍎"},
	{"る", "るびー", "ルビー", "💎"},
	{"れ", "れもん", "レモン", "🍋"},
	{"ろ", "ろうそく", "蝋燭", "🕯️"},
	{"わ", "わに", "鰐", "🐊"},
	{"を", "を", "を", "📝"},
	{"ん", "ん", "ん", "💤"},
}

// HiraganaByRow returns the card pool for a row ID. Unknown rows fall
// back to the full table.
func HiraganaByRow(rowID string) []KanaCard {
	if rowID == "" || rowID == "all" {
		return Hiragana
	}
	for _, row := range KanaRows {
		if row.ID != rowID || len(row.Kanas) == 0 {
			continue
		}
		kanas := make(map[string]bool, len(row.Kanas))
		for _, k := range row.Kanas {
			kanas[k] = true
		}
		var pool []KanaCard
		for _, c := range Hiragana {
			if kanas[c.Kana] {
				pool = append(pool, c)
			}
		}
		return pool
	}
	return Hiragana
}
