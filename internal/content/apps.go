package content

// App describes one learning activity.
type App struct {
	ID   string
	Name string
	Icon string
}

// App IDs. These are the keys used in progress records, activity logs
// and schedules.
const (
	AppDotsCard     = "dots-card"
	AppDotsCardMath = "dots-card-math"
	AppEnglishFlash = "english-flash"
	AppHiragana     = "hiragana-flash"
)

// Apps is the activity catalog.
var Apps = []App{
	{ID: AppDotsCard, Name: "ドッツカード", Icon: "🔴"},
	{ID: AppDotsCardMath, Name: "ドッツ計算", Icon: "🧮"},
	{ID: AppEnglishFlash, Name: "えいごフラッシュ", Icon: "🔤"},
	{ID: AppHiragana, Name: "ひらがなフラッシュ", Icon: "🈁"},
}

// ValidApp reports whether id names a known activity.
func ValidApp(id string) bool {
	for _, a := range Apps {
		if a.ID == id {
			return true
		}
	}
	return false
}
