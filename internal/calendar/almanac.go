package calendar

import "fmt"

// The Twelve Construction Stars (十二建星) in sequence, with the
// traditional auspiciousness reading of each.
// "建满平收黑，除危定执黄，成开皆可用，破闭不可当"
var constructionStars = [12]struct {
	Label       string
	Translation string
	Level       string
	Score       int
}{
	{"建", "Jiàn (Establish)", "inauspicious", 2},
	{"除", "Chú (Remove)", "auspicious", 4},
	{"满", "Mǎn (Full)", "moderate", 3},
	{"平", "Píng (Balanced)", "inauspicious", 2},
	{"定", "Dìng (Set)", "auspicious", 4},
	{"执", "Zhí (Hold)", "moderate", 3},
	{"破", "Pò (Break)", "very_inauspicious", 1},
	{"危", "Wēi (Danger)", "inauspicious", 2},
	{"成", "Chéng (Accomplish)", "moderate", 3},
	{"收", "Shōu (Harvest)", "inauspicious", 2},
	{"开", "Kāi (Open)", "moderate", 3},
	{"闭", "Bì (Close)", "very_inauspicious", 1},
}

// The Twelve Spirits of the Great Yellow Path (大黄道) in sequence.
// Auspicious spirits walk the yellow path, inauspicious the black.
var yellowPathSpirits = [12]struct {
	Label        string
	English      string
	IsAuspicious bool
}{
	{"青龙", "Azure Dragon", true},
	{"明堂", "Bright Hall", true},
	{"天刑", "Heavenly Punishment", false},
	{"朱雀", "Vermillion Bird", false},
	{"金匮", "Golden Coffer", true},
	{"天德", "Heavenly Virtue", true},
	{"白虎", "White Tiger", false},
	{"玉堂", "Jade Hall", true},
	{"天牢", "Heavenly Prison", false},
	{"玄武", "Black Tortoise", false},
	{"司命", "Life Controller", true},
	{"勾陈", "Coiling Snake", false},
}

// ConstructionStar is one day's construction-star classification.
type ConstructionStar struct {
	Label       string `json:"label"`
	Translation string `json:"translation"`
	Level       string `json:"level"`
	Score       int    `json:"score"`
}

// Spirit is one day's Great Yellow Path classification.
type Spirit struct {
	Label        string `json:"label"`
	English      string `json:"english"`
	IsAuspicious bool   `json:"isAuspicious"`
	PathType     string `json:"pathType"` // 黄道 or 黑道
}

// buildingBranch is the month's building branch index: the same fixed
// per-month branch as the month pillar (month 1 is 寅).
func buildingBranch(lunarMonth int) int {
	if lunarMonth < 1 || lunarMonth > 12 {
		panic(fmt.Sprintf("calendar: lunar month %d out of range", lunarMonth))
	}
	return (lunarMonth + 1) % 12
}

// azureDragonStart is the branch on which 青龙 opens the spirit sequence
// for a lunar month; the pattern repeats every six months.
func azureDragonStart(lunarMonth int) int {
	if lunarMonth < 1 || lunarMonth > 12 {
		panic(fmt.Sprintf("calendar: lunar month %d out of range", lunarMonth))
	}
	return ((lunarMonth - 1) % 6) * 2
}

// ConstructionStarIndex returns the 0-based star index for a lunar month
// and day branch.
func ConstructionStarIndex(lunarMonth, dayBranch int) int {
	if dayBranch < 0 || dayBranch > 11 {
		panic(fmt.Sprintf("calendar: branch index %d out of range", dayBranch))
	}
	return (dayBranch - buildingBranch(lunarMonth) + 12) % 12
}

// ConstructionStarFor returns the star for a lunar month and day branch.
func ConstructionStarFor(lunarMonth, dayBranch int) ConstructionStar {
	return starAt(ConstructionStarIndex(lunarMonth, dayBranch))
}

func starAt(index int) ConstructionStar {
	s := constructionStars[index]
	return ConstructionStar{Label: s.Label, Translation: s.Translation, Level: s.Level, Score: s.Score}
}

// SpiritFor returns the Yellow Path spirit for a lunar month and day
// branch.
func SpiritFor(lunarMonth, dayBranch int) Spirit {
	if dayBranch < 0 || dayBranch > 11 {
		panic(fmt.Sprintf("calendar: branch index %d out of range", dayBranch))
	}
	s := yellowPathSpirits[(dayBranch-azureDragonStart(lunarMonth)+12)%12]
	path := "黑道"
	if s.IsAuspicious {
		path = "黄道"
	}
	return Spirit{Label: s.Label, English: s.English, IsAuspicious: s.IsAuspicious, PathType: path}
}
