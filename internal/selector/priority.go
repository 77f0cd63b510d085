package selector

import "strings"

// keywordBonus is a group of path fragments worth a fixed bonus. A group
// contributes at most once, however many of its fragments match.
type keywordBonus struct {
	fragments []string
	bonus     int
}

var keywordBonuses = []keywordBonus{
	{fragments: []string{"src/", "lib/"}, bonus: 20},
	{fragments: []string{"test", "spec"}, bonus: 15},
	{fragments: []string{"config", "package.json"}, bonus: 10},
	{fragments: []string{"auth", "security", "login"}, bonus: 25},
}

// Priority scores how urgently a file should be reviewed. Higher scores are
// reviewed first. The score depends only on its arguments.
func Priority(p string, changes int, language string) int {
	lower := strings.ToLower(p)
	score := 0
	for _, kb := range keywordBonuses {
		for _, frag := range kb.fragments {
			if strings.Contains(lower, frag) {
				score += kb.bonus
				break
			}
		}
	}

	score += tierBonus(language)

	switch {
	case changes > 100:
		score += 10
	case changes > 50:
		score += 5
	}
	return score
}
