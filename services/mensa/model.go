package mensa

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Meal is one orderable item on a serving line. Note is empty when the
// page carries no note span, Price stays formatted currency text, Tags
// is a small closed vocabulary derived from the meal icons in source
// order, deduplicated.
type Meal struct {
	Name  string   `json:"name"`
	Note  string   `json:"note"`
	Price string   `json:"price"`
	Tags  []string `json:"tags"`
}

// Line is the day's meals at one serving counter, in source order.
type Line []Meal

// Canteen maps line names to lines while remembering the order the
// lines appeared on the page; the upstream dict relied on insertion
// order for rendering, so a bare Go map would lose determinism.
type Canteen struct {
	Order []string
	Lines map[string]Line
}

func (c *Canteen) Add(name string, line Line) {
	if c.Lines == nil {
		c.Lines = map[string]Line{}
	}
	if _, exists := c.Lines[name]; !exists {
		c.Order = append(c.Order, name)
	}
	c.Lines[name] = line
}

func (c Canteen) Get(name string) (Line, bool) {
	line, ok := c.Lines[name]
	return line, ok
}

func (c Canteen) IsZero() bool {
	return c.Lines == nil
}

func (c Canteen) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		line := c.Lines[name]
		if line == nil {
			line = Line{}
		}
		value, err := json.Marshal(line)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Canteen) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a json object for a canteen, got %v", tok)
	}

	*c = Canteen{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected a line name, got %v", tok)
		}
		var line Line
		err = dec.Decode(&line)
		if err != nil {
			return err
		}
		c.Add(name, line)
	}
	_, err = dec.Token()
	return err
}

// Snapshot is the complete scraped state at one refresh tick, keyed by
// canonical canteen name. It is replaced wholesale and never mutated
// after publishing.
type Snapshot map[string]Canteen

// Meta is the lightweight status view; LastUpdate is an ISO-8601
// timestamp or the empty string before the first successful scrape.
type Meta struct {
	LastUpdate string `json:"last_update"`
}

// ShortNames maps user-facing abbreviations to canonical canteen
// names. Immutable for the process lifetime; resolution is a
// case-sensitive prefix match against the keys.
var ShortNames = map[string]string{
	"Adenauerring":        "Mensa Am Adenauerring",
	"Erzbergerstraße":     "Mensa Erzbergerstraße",
	"Holzgartenstraße":    "Mensa Holzgartenstraße",
	"Moltkestraße":        "Mensa Moltke",
	"Gottesaue":           "Mensa Schloss Gottesaue",
	"Tiefenbronnerstraße": "Mensa Tiefenbronnerstraße",
}

// DefaultCanteen is served on the root route and logged to history.
const DefaultCanteen = "Mensa Am Adenauerring"

// DefaultLineOrder is the Adenauerring line order used to seed the
// history store's metadata on first open.
var DefaultLineOrder = []string{
	"Linie 1", "Linie 2", "Linie 3", "Linie 4/5", "Schnitzelbar",
	"L6 Update", "Spätausgabe und Abendessen", "[Kœri]werk",
	"Cafeteria Heiße Theke", "Cafeteria ab 14:30",
}

// icon filename tails on the menu page mapped to dietary tags;
// anything not listed here contributes no tag
var iconTags = map[string]string{
	"vegetarian_2.gif": "veggi",
	"vegan_2.gif":      "vegan",
	"s_2.gif":          "schwein",
	"r_2.gif":          "rind",
	"m_2.gif":          "fisch",
	"bio_2.gif":        "bio",
}
