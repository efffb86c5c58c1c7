package main

import (
	"slices"
	"strconv"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// 支持选择的菜系与风格
var (
	cuisines = []string{
		"mexican", "italian", "chinese", "japanese", "thai", "indian", "american (new)", "american (traditional)",
		"french", "middle eastern", "korean", "mediterranean", "vietnamese", "cajun", "greek", "hawaiian",
		"asian fusion", "vegetarian", "vegan", "steakhouse", "barbeque", "sushi bars", "tex-mex", "specialty food",
		"gluten-free", "coffee & tea", "desserts", "seafood", "ice cream & frozen yogurt", "bakeries", "beer",
		"wine & spirits", "soup", "pizza", "hot dogs", "burgers", "donuts", "cupcakes", "salad", "tacos",
		"chicken wings", "sandwiches", "bubble tea", "tapas/small plates", "shaved ice", "bagels", "southern",
		"local flavor", "latin american", "custom cakes", "ethnic food",
	}
	styles = []string{
		"restaurants", "fast food", "food stands", "street vendors", "nightlife", "buffets", "bars", "food trucks",
		"breakfast & brunch", "diners", "cocktail bars", "pubs", "sports bars", "wine bars", "beer bars",
		"casinos", "juice bars & smoothies", "caterers", "delis", "cafes", "lounges", "music venues",
		"performing arts", "food delivery services", "dive bars", "dance clubs", "breweries",
	}
)

const (
	keywordLocation = 1
	keywordCuisine  = 2
	keywordStyle    = 3
	keywordPrice    = 4
)

// readKeywords 交互式收集关键词过滤条件，空输入表示跳过。
// 最大距离未输入时为 0，由控制器使用配置的默认值。
func (s *shell) readKeywords() core.Criteria {
	var crit core.Criteria

	answer := s.ask("What would you like to filter by?\n" +
		"1 location (zipcode, city, state);\n2 cuisine;\n3 style;\n4 price range\n" +
		"Separate multiple numbers by comma.")
	if answer == "" {
		return crit
	}

	for _, field := range strings.Split(answer, ",") {
		field = strings.TrimSpace(field)
		kw, err := strconv.Atoi(field)
		if err != nil {
			s.printf("Invalid input %q skipped\n", field)
			continue
		}
		switch kw {
		case keywordLocation:
			crit.Zipcode = s.ask("Zipcode of interest (ENTER to skip):")
			crit.City = s.ask("City of interest (ENTER to skip):")
			crit.State = s.ask("State of interest (ENTER to skip):")
			if r := s.ask("Max distance in miles (ENTER to skip):"); r != "" {
				d, err := strconv.ParseFloat(r, 64)
				if err != nil || d <= 0 {
					s.printf("Invalid number, using the default max distance\n")
				} else {
					crit.MaxDistance = d
				}
			}
		case keywordCuisine:
			crit.Cuisine = s.choose("cuisine", cuisines)
		case keywordStyle:
			crit.Style = s.choose("style", styles)
		case keywordPrice:
			crit.Price = s.ask("Price range of interest:\n1 cheap ($);\n2 medium ($$);\n3 expensive ($$$);\n4 most expensive ($$$$)\n" +
				"Separate multiple numbers by comma.")
		default:
			s.printf("Invalid category %d skipped\n", kw)
		}
	}
	return crit
}

// choose 反复提示直到输入白名单中的值或空输入。
func (s *shell) choose(kind string, options []string) string {
	for {
		r := s.ask("Select a " + kind + " (ENTER to skip):\n" + strings.Join(options, ", "))
		if r == "" || s.eof {
			return ""
		}
		if slices.Contains(options, r) {
			return r
		}
		s.printf("Invalid %s %q\n", kind, r)
	}
}
