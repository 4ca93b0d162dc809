// Package autotag derives flavor and style tags for wines from their free-text
// fields. Everything here is a pure function of its input.
package autotag

import (
	"regexp"
	"sort"
	"strings"
)

// keywordCategory maps a tag name to the phrases that trigger it.
type keywordCategory struct {
	Name     string
	Keywords []string
}

// primaryCategories is the fixed vocabulary offered to manual tagging.
// Singular and plural forms are listed explicitly; there is no stemming.
var primaryCategories = []keywordCategory{
	{Name: "berry", Keywords: []string{
		"berry", "berries", "blackberry", "blackberries", "raspberry", "raspberries",
		"strawberry", "strawberries", "blueberry", "blueberries", "cherry", "cherries",
		"cranberry", "cranberries", "currant", "currants", "cassis", "plum", "plums",
		"red fruit", "dark fruit", "bramble",
	}},
	{Name: "earthy", Keywords: []string{
		"earth", "earthy", "forest floor", "mushroom", "mushrooms", "truffle", "truffles",
		"leather", "tobacco", "mineral", "minerality", "soil", "wet stone", "graphite",
		"slate", "underbrush",
	}},
	{Name: "citrus", Keywords: []string{
		"citrus", "lemon", "lemons", "lime", "limes", "grapefruit", "orange", "oranges",
		"orange peel", "tangerine", "zest", "lemon zest", "yuzu", "bergamot",
	}},
	{Name: "floral", Keywords: []string{
		"floral", "flower", "flowers", "blossom", "blossoms", "orange blossom",
		"rose petal", "rose petals", "violet", "violets", "lavender", "jasmine",
		"honeysuckle", "elderflower", "acacia", "perfumed",
	}},
	{Name: "chocolate", Keywords: []string{
		"chocolate", "dark chocolate", "milk chocolate", "cocoa", "cacao", "mocha",
		"coffee", "espresso",
	}},
	{Name: "vanilla", Keywords: []string{
		"vanilla", "vanillin", "caramel", "butterscotch", "toffee", "brown sugar",
		"crème brûlée", "creme brulee", "marshmallow",
	}},
	{Name: "spicy", Keywords: []string{
		"spice", "spices", "spicy", "spiced", "pepper", "peppery", "black pepper",
		"white pepper", "cinnamon", "clove", "cloves", "nutmeg", "anise", "licorice",
		"ginger", "baking spice",
	}},
	{Name: "buttery", Keywords: []string{
		"butter", "buttery", "cream", "creamy", "brioche", "custard", "malolactic",
	}},
	{Name: "nutty", Keywords: []string{
		"nut", "nuts", "nutty", "almond", "almonds", "hazelnut", "hazelnuts",
		"walnut", "walnuts", "marzipan", "toasted nuts",
	}},
	{Name: "herbal", Keywords: []string{
		"herb", "herbs", "herbal", "herbaceous", "sage", "thyme", "rosemary", "mint",
		"eucalyptus", "grass", "grassy", "bay leaf", "basil", "dill", "tea leaf",
	}},
}

// contextualCategories describe body and style rather than flavor.
var contextualCategories = []keywordCategory{
	{Name: "fruit", Keywords: []string{
		"fruit", "fruits", "fruity", "fruit-forward", "apple", "apples", "pear", "pears",
		"peach", "peaches", "apricot", "apricots", "melon", "tropical", "pineapple",
		"mango", "passion fruit", "jammy",
	}},
	{Name: "oak", Keywords: []string{
		"oak", "oaky", "oaked", "barrel", "barrels", "barrel-aged", "cedar", "toast",
		"toasty", "smoke", "smoky",
	}},
	{Name: "sweet", Keywords: []string{
		"sweet", "sweetness", "honey", "honeyed", "sugar", "sugary", "syrup", "jam",
		"dessert", "late harvest",
	}},
	{Name: "dry", Keywords: []string{
		"dry", "dryness", "bone dry", "bone-dry", "crisp", "brut", "tart", "austere",
	}},
	{Name: "bold", Keywords: []string{
		"bold", "full-bodied", "full bodied", "robust", "powerful", "intense", "rich",
		"tannic", "structured", "big",
	}},
	{Name: "light", Keywords: []string{
		"light", "light-bodied", "light bodied", "delicate", "refreshing", "airy",
		"easy-drinking",
	}},
}

// typeDefault applies Tags when the lowercased wine type contains any of Triggers.
type typeDefault struct {
	Triggers []string
	Tags     []string
}

// typeDefaults is evaluated in order; the first matching entry wins.
var typeDefaults = []typeDefault{
	{Triggers: []string{"red"}, Tags: []string{"berry", "earthy"}},
	{Triggers: []string{"white"}, Tags: []string{"citrus", "floral"}},
	{Triggers: []string{"rosé", "rose"}, Tags: []string{"berry", "floral"}},
	{Triggers: []string{"sparkling"}, Tags: []string{"citrus", "light"}},
	{Triggers: []string{"dessert"}, Tags: []string{"sweet", "vanilla"}},
}

type compiledCategory struct {
	name     string
	patterns []*regexp.Regexp
}

var (
	compiledPrimary    = compileCategories(primaryCategories)
	compiledContextual = compileCategories(contextualCategories)
)

func compileCategories(categories []keywordCategory) []compiledCategory {
	out := make([]compiledCategory, 0, len(categories))
	for _, cat := range categories {
		cc := compiledCategory{name: cat.Name, patterns: make([]*regexp.Regexp, 0, len(cat.Keywords))}
		for _, kw := range cat.Keywords {
			cc.patterns = append(cc.patterns, phrasePattern(kw))
		}
		out = append(out, cc)
	}
	return out
}

// phrasePattern builds a case-insensitive whole-phrase matcher. A boundary is
// the edge of the text or any rune that is not a letter, digit, or underscore,
// so "pear" does not match inside "appears" and "rosé" is a single word.
func phrasePattern(phrase string) *regexp.Regexp {
	words := strings.Fields(strings.ToLower(phrase))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	const boundary = `[^\p{L}\p{N}_]`
	expr := `(?i)(?:^|` + boundary + `)` + strings.Join(words, `\s+`) + `(?:$|` + boundary + `)`
	return regexp.MustCompile(expr)
}

func categoryNames(categories []keywordCategory) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// SuggestedTags returns the sorted primary vocabulary.
func SuggestedTags() []string {
	return categoryNames(primaryCategories)
}

// ContextualTags returns the sorted body and style vocabulary.
func ContextualTags() []string {
	return categoryNames(contextualCategories)
}
