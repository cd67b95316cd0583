package mensa

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"mensa-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ErrParseIncomplete marks a page whose structure is missing a
// required element; the parser never hands back a partially populated
// snapshot, so a cycle seeing this keeps the previous one.
var ErrParseIncomplete = errors.New("menu page structure incomplete")

// selector schema for the sw-ka menu page; every structural assumption
// about the upstream markup lives here so a layout change only needs
// re-tuning in one place
const (
	selCanteenContainer = "div[id^='canteen_place_']"
	selCanteenHeading   = "h1"
	selMenuFragment     = "div[id^='fragment-c']"
	selLineRow          = "tr"
	selLineName         = "td.mensatype"
	selMealRow          = "tr[class^='mt-']"
	selMealName         = "b"
	selMealCell         = "td.first"
	selNoteCandidate    = "span"
	selPrice            = "span.bgp.price_1"
	selIcon             = "img.mealicon_2"
)

var (
	canteenIDPattern  = regexp.MustCompile(`^canteen_place_(\d+)$`)
	fragmentIDPattern = regexp.MustCompile(`^fragment-c(\d+)-1$`)
)

// parseMenuPage turns the repaired page text into a Snapshot. It is a
// pure function; any missing required element fails the whole page.
func parseMenuPage(html string) (Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseIncomplete, err)
	}

	names, err := canteenNames(doc)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot{}
	doc.Find(selMenuFragment).EachWithBreak(func(_ int, fragment *goquery.Selection) bool {
		id := fragment.AttrOr("id", "")
		match := fragmentIDPattern.FindStringSubmatch(id)
		if match == nil {
			// other tabs of the fragment widget, not a menu
			return true
		}

		name, ok := names[match[1]]
		if !ok {
			err = fmt.Errorf("%w: fragment %q has no canteen heading", ErrParseIncomplete, id)
			return false
		}

		var canteen Canteen
		canteen, err = parseCanteen(fragment)
		if err != nil {
			return false
		}
		snapshot[name] = canteen
		return true
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// canteenNames associates the small canteen index embedded in the
// container ids with the display name from each container's heading.
func canteenNames(doc *goquery.Document) (map[string]string, error) {
	names := map[string]string{}
	var err error

	doc.Find(selCanteenContainer).EachWithBreak(func(_ int, container *goquery.Selection) bool {
		id := container.AttrOr("id", "")
		match := canteenIDPattern.FindStringSubmatch(id)
		if match == nil {
			return true
		}

		heading := container.Find(selCanteenHeading).First()
		if heading.Length() == 0 {
			err = fmt.Errorf("%w: container %q has no heading", ErrParseIncomplete, id)
			return false
		}
		names[match[1]] = htmlutil.NormalizeSpace(heading.Text())
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no canteen containers found", ErrParseIncomplete)
	}
	return names, nil
}

func parseCanteen(fragment *goquery.Selection) (Canteen, error) {
	var canteen Canteen
	var err error

	fragment.Find(selLineRow).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if _, classed := row.Attr("class"); classed {
			return true
		}
		nameCell := row.Find(selLineName).First()
		if nameCell.Length() == 0 {
			return true
		}

		lineName := lineNameText(nameCell)
		meals := Line{}
		row.Find(selMealRow).EachWithBreak(func(_ int, mealRow *goquery.Selection) bool {
			var meal Meal
			meal, err = parseMeal(mealRow)
			if err != nil {
				return false
			}
			meals = append(meals, meal)
			return true
		})
		if err != nil {
			return false
		}

		canteen.Add(lineName, meals)
		return true
	})
	if err != nil {
		return Canteen{}, err
	}
	return canteen, nil
}

// the line name sits in the name cell's first child node, the rest of
// the cell holds opening hours and other noise
func lineNameText(cell *goquery.Selection) string {
	first := cell.Nodes[0].FirstChild
	if first == nil {
		return htmlutil.NormalizeSpace(cell.Text())
	}
	return htmlutil.NormalizeSpace(htmlutil.GetText(first))
}

func parseMeal(row *goquery.Selection) (Meal, error) {
	name := row.Find(selMealName).First()
	if name.Length() == 0 {
		return Meal{}, fmt.Errorf("%w: meal row without a name", ErrParseIncomplete)
	}
	price := row.Find(selPrice).First()
	if price.Length() == 0 {
		return Meal{}, fmt.Errorf("%w: meal row without a price", ErrParseIncomplete)
	}
	cell := row.Find(selMealCell).First()
	if cell.Length() == 0 {
		return Meal{}, fmt.Errorf("%w: meal row without a description cell", ErrParseIncomplete)
	}

	note := ""
	cell.Find(selNoteCandidate).EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if _, classed := span.Attr("class"); classed {
			return true
		}
		note = htmlutil.NormalizeSpace(span.Text())
		return false
	})

	var tags []string
	seen := map[string]bool{}
	row.Find(selIcon).Each(func(_ int, icon *goquery.Selection) {
		src := icon.AttrOr("src", "")
		tag, ok := iconTags[path.Base(src)]
		if !ok || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	})

	return Meal{
		Name:  htmlutil.NormalizeSpace(name.Text()),
		Note:  note,
		Price: htmlutil.NormalizeSpace(price.Text()),
		Tags:  tags,
	}, nil
}
