// Package content holds the built-in learning material: the English
// vocabulary cards, the hiragana cards, and the activity catalog. The
// tables are embedded in code and treated as read-only.
package content

// WordCard is one English vocabulary card: the word, its emoji
// illustration, and the category it belongs to.
type WordCard struct {
	Word     string
	Emoji    string
	Category string
}

// WordCategories lists the selectable vocabulary categories. "all"
// means the whole table.
var WordCategories = []string{"all", "animals", "food", "things", "body", "nature", "colors"}

// Words is the full vocabulary table.
var Words = []WordCard{
	// Animals.
	{"dog", "🐶", "animals"},
	{"cat", "🐱", "animals"},
	{"bird", "🐦", "animals"},
	{"fish", "🐟", "animals"},
	{"rabbit", "🐰", "animals"},
	{"bear", "🐻", "animals"},
	{"elephant", "🐘", "animals"},
	{"lion", "🦁", "animals"},
	{"monkey", "🐵", "animals"},
	{"pig", "🐷", "animals"},
	{"cow", "🐮", "animals"},
	{"horse", "🐴", "animals"},
	{"sheep", "🐑", "animals"},
	{"chicken", "🐔", "animals"},
	{"duck", "🦆", "animals"},
	{"frog", "🐸", "animals"},
	{"turtle", "🐢", "animals"},
	{"penguin", "🐧", "animals"},
	{"whale", "🐳", "animals"},
	{"butterfly", "🦋", "animals"},
	{"giraffe", "🦒", "animals"},
	{"zebra", "🦓", "animals"},
	{"snake", "🐍", "animals"},
	{"owl", "🦉", "animals"},
	{"dolphin", "🐬", "animals"},
	// Food.
	{"apple", "🍎", "food"},
	{"banana", "🍌", "food"},
	{"orange", "🍊", "food"},
	{"grape", "🍇", "food"},
	{"strawberry", "🍓", "food"},
	{"watermelon", "🍉", "food"},
	{"peach", "🍑", "food"},
	{"cherry", "🍒", "food"},
	{"bread", "🍞", "food"},
	{"rice", "🍚", "food"},
	{"egg", "🥚", "food"},
	{"milk", "🥛", "food"},
	{"cake", "🎂", "food"},
	{"cookie", "🍪", "food"},
	{"ice cream", "🍦", "food"},
	{"pizza", "🍕", "food"},
	{"tomato", "🍅", "food"},
	{"corn", "🌽", "food"},
	{"carrot", "🥕", "food"},
	{"lemon", "🍋", "food"},
	{"chocolate", "🍫", "food"},
	{"cheese", "🧀", "food"},
	{"donut", "🍩", "food"},
	{"pineapple", "🍍", "food"},
	{"mushroom", "🍄", "food"},
	// Vehicles and things.
	{"car", "🚗", "things"},
	{"bus", "🚌", "things"},
	{"train", "🚆", "things"},
	{"airplane", "✈️", "things"},
	{"bicycle", "🚲", "things"},
	{"boat", "⛵", "things"},
	{"rocket", "🚀", "things"},
	{"star", "⭐", "things"},
	{"sun", "☀️", "things"},
	{"moon", "🌙", "things"},
	{"rainbow", "🌈", "things"},
	{"flower", "🌸", "things"},
	{"tree", "🌳", "things"},
	{"house", "🏠", "things"},
	{"book", "📚", "things"},
	{"pencil", "✏️", "things"},
	{"clock", "🕐", "things"},
	{"umbrella", "☂️", "things"},
	{"hat", "🎩", "things"},
	{"shoe", "👟", "things"},
	{"key", "🔑", "things"},
	{"bell", "🔔", "things"},
	{"ball", "⚽", "things"},
	{"guitar", "🎸", "things"},
	{"camera", "📷", "things"},
	// Body.
	{"eye", "👁️", "body"},
	{"ear", "👂", "body"},
	{"hand", "✋", "body"},
	{"foot", "🦶", "body"},
	{"heart", "❤️", "body"},
	{"nose", "👃", "body"},
	{"mouth", "👄", "body"},
	{"tooth", "🦷", "body"},
	{"leg", "🦵", "body"},
	{"bone", "🦴", "body"},
	{"brain", "🧠", "body"},
	{"muscle", "💪", "body"},
	{"finger", "👆", "body"},
	{"face", "😊", "body"},
	{"tongue", "👅", "body"},
	// Nature.
	{"fire", "🔥", "nature"},
	{"water", "💧", "nature"},
	{"snow", "❄️", "nature"},
	{"cloud", "☁️", "nature"},
	{"mountain", "⛰️", "nature"},
	{"rain", "🌧️", "nature"},
	{"wind", "🌬️", "nature"},
	{"thunder", "⚡", "nature"},
	{"ocean", "🌊", "nature"},
	{"river", "🏞️", "nature"},
	{"leaf", "🍃", "nature"},
	{"rock", "🪨", "nature"},
	{"sand", "🏖️", "nature"},
	{"earth", "🌍", "nature"},
	{"volcano", "🌋", "nature"},
	// Colors.
	{"red", "🔴", "colors"},
	{"blue", "🔵", "colors"},
	{"green", "🟢", "colors"},
	{"yellow", "🟡", "colors"},
	{"orange", "🟠", "colors"},
	{"purple", "🟣", "colors"},
	{"pink", "🩷", "colors"},
	{"white", "⬜", "colors"},
	{"black", "⬛", "colors"},
	{"brown", "🟤", "colors"},
}

// WordsByCategory returns the vocabulary pool for a category. Unknown
// categories fall back to the full table.
func WordsByCategory(category string) []WordCard {
	if category == "" || category == "all" {
		return Words
	}
	var pool []WordCard
	for _, w := range Words {
		if w.Category == category {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return Words
	}
	return pool
}

// FindWord looks up a card by its word.
func FindWord(word string) (WordCard, bool) {
	for _, w := range Words {
		if w.Word == word {
			return w, true
		}
	}
	return WordCard{}, false
}
