// Package social derives post metadata for a finished highlights run.
package social

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sideline/internal/config"
	"sideline/internal/edl"
)

// typeHashtags maps event types to the tags their presence earns.
var typeHashtags = map[string][]string{
	edl.TypeGoal:     {"#Goals"},
	edl.TypeGoalLike: {"#Goals"},
	edl.TypeBigSave:  {"#Saves", "#Keeper"},
	edl.TypeSave:     {"#Saves"},
	edl.TypeChance:   {"#Chances"},
	edl.TypeCard:     {"#Cards"},
}

// Hashtags builds the tag list for a run: the configured club and
// competition tags first, then one tag per event type present in the final
// EDL, deduplicated and capped at the configured maximum.
func Hashtags(cfg *config.Config, events []*edl.Event) []string {
	var tags []string
	seen := make(map[string]struct{})
	add := func(tag string) {
		if tag == "" {
			return
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}

	add(Hashtag(cfg.Social.ClubTag))
	add(Hashtag(cfg.Social.Competition))
	add("#Highlights")

	var typed []string
	for _, event := range events {
		typed = append(typed, typeHashtags[event.Type]...)
	}
	sort.Strings(typed)
	for _, tag := range typed {
		add(tag)
	}

	if max := cfg.Social.MaxHashtags; max > 0 && len(tags) > max {
		tags = tags[:max]
	}
	return tags
}

// Hashtag turns free text into a single CamelCase hashtag, e.g.
// "county senior cup" becomes "#CountySeniorCup". Text that is already a
// hashtag is kept as written.
func Hashtag(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if strings.HasPrefix(text, "#") {
		return text
	}

	titled := cases.Title(language.Und).String(strings.ToLower(text))
	var b strings.Builder
	b.WriteByte('#')
	for _, r := range titled {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 1 {
		return ""
	}
	return b.String()
}
