package gamification

import "golang.org/x/text/language"

// BadgeView is the localized display data of a badge
type BadgeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Criterion   string `json:"criterion"`
	Language    string `json:"language"`
}

var supportedLanguages = []language.Tag{
	language.English, // first entry is the fallback
	language.French,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// ResolveLanguage picks the best supported language for an Accept-Language
// style preference string. Empty or unparsable input resolves to English.
func ResolveLanguage(pref string) string {
	if pref == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, _ := languageMatcher.Match(tags...)
	base, _ := supportedLanguages[idx].Base()
	return base.String()
}

// View renders the badge in the given language
func (b BadgeDefinition) View(lang string) BadgeView {
	return BadgeView{
		ID:          b.ID,
		Name:        localized(b.Names, lang),
		Description: localized(b.Descriptions, lang),
		Icon:        b.Icon,
		Color:       b.Color,
		Criterion:   b.Criterion.Describe(),
		Language:    lang,
	}
}

// Badge returns the catalog definition for an id
func (e *Engine) Badge(id string) (BadgeDefinition, bool) {
	i, ok := e.badgeIndex[id]
	if !ok {
		return BadgeDefinition{}, false
	}
	return e.badges[i], true
}

// BadgeViews renders the given badge ids, skipping ids missing from the catalog
func (e *Engine) BadgeViews(ids []string, pref string) []BadgeView {
	lang := ResolveLanguage(pref)
	views := make([]BadgeView, 0, len(ids))
	for _, id := range ids {
		if b, ok := e.Badge(id); ok {
			views = append(views, b.View(lang))
		}
	}
	return views
}

// Catalog renders the full badge catalog in evaluation order
func (e *Engine) Catalog(pref string) []BadgeView {
	lang := ResolveLanguage(pref)
	views := make([]BadgeView, 0, len(e.badges))
	for _, b := range e.badges {
		views = append(views, b.View(lang))
	}
	return views
}

func localized(values map[string]string, lang string) string {
	if v, ok := values[lang]; ok && v != "" {
		return v
	}
	return values[DefaultLanguage]
}
