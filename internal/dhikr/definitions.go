package dhikr

// Definition is one dhikr or dua with its fixed repetition goal. A goal of
// 1 is a single-tap acknowledgment rather than a counted repetition.
type Definition struct {
	Title           string `json:"title"`
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
	Goal            int    `json:"goal"`
}

// Definitions is the fixed list the app has always shipped, in display
// order. Indexes into this slice are the persistence keys.
var Definitions = []Definition{
	{
		Title:           "Субханаллах",
		Arabic:          "سُبْحَانَ ٱللَّٰهِ",
		Transliteration: "Subḥānallāh",
		Translation:     "Слава Аллаху",
		Goal:            33,
	},
	{
		Title:           "Альхамдулиллях",
		Arabic:          "ٱلْحَمْدُ لِلَّٰهِ",
		Transliteration: "Alḥamdulillāh",
		Translation:     "Хвала Аллаху",
		Goal:            33,
	},
	{
		Title:           "Аллаху Акбар",
		Arabic:          "ٱللَّٰهُ أَكْبَرُ",
		Transliteration: "Allāhu akbar",
		Translation:     "Аллах велик",
		Goal:            34,
	},
	{
		Title:           "Ля иляха илляллах",
		Arabic:          "لَا إِلَٰهَ إِلَّا ٱللَّٰهُ",
		Transliteration: "Lā ilāha illallāh",
		Translation:     "Нет божества, кроме Аллаха",
		Goal:            100,
	},
	{
		Title:           "Астагфируллах",
		Arabic:          "أَسْتَغْفِرُ ٱللَّٰهَ",
		Transliteration: "Astaghfirullāh",
		Translation:     "Прошу прощения у Аллаха",
		Goal:            100,
	},
	{
		Title:           "Дуа перед едой",
		Arabic:          "بِسْمِ ٱللَّٰهِ",
		Transliteration: "Bismillāh",
		Translation:     "Во имя Аллаха",
		Goal:            1,
	},
	{
		Title:           "Дуа после еды",
		Arabic:          "ٱلْحَمْدُ لِلَّٰهِ ٱلَّذِي أَطْعَمَنَا وَسَقَانَا",
		Transliteration: "Alḥamdulillāhil-ladhī aṭ'amanā wa-saqānā",
		Translation:     "Хвала Аллаху, Который накормил нас и напоил нас",
		Goal:            1,
	},
	{
		Title:           "Дуа перед сном",
		Arabic:          "بِٱسْمِكَ ٱللَّٰهُمَّ أَمُوتُ وَأَحْيَا",
		Transliteration: "Bismika Allāhumma amūtu wa-aḥyā",
		Translation:     "Именем Твоим, о Аллах, умираю и оживаю",
		Goal:            1,
	},
}
