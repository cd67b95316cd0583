package mensa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resolveSnapshot() Snapshot {
	adenauerring := Canteen{}
	adenauerring.Add("Linie 1", Line{{Name: "Käsespätzle", Price: "3,20 €"}})
	adenauerring.Add("Linie 2", Line{{Name: "Eintopf", Price: "2,00 €"}})
	adenauerring.Add("Linie 4/5", Line{{Name: "Pasta", Price: "2,80 €"}})
	adenauerring.Add("Schnitzelbar", Line{{Name: "Schnitzel", Price: "4,50 €"}})

	gottesaue := Canteen{}
	gottesaue.Add("Linie 2", Line{{Name: "Rindergulasch", Price: "3,80 €"}})

	return Snapshot{
		"Mensa Am Adenauerring":   adenauerring,
		"Mensa Schloss Gottesaue": gottesaue,
	}
}

func TestResolveCanteenUniquePrefix(t *testing.T) {
	name, canteen, err := ResolveCanteen(resolveSnapshot(), "Aden")
	require.NoError(t, err)
	require.Equal(t, "Mensa Am Adenauerring", name)
	require.Equal(t, []string{"Linie 1", "Linie 2", "Linie 4/5", "Schnitzelbar"}, canteen.Order)
}

func TestResolveCanteenFullShortName(t *testing.T) {
	name, _, err := ResolveCanteen(resolveSnapshot(), "Gottesaue")
	require.NoError(t, err)
	require.Equal(t, "Mensa Schloss Gottesaue", name)
}

func TestResolveCanteenEmptyQueryIsAmbiguous(t *testing.T) {
	_, _, err := ResolveCanteen(resolveSnapshot(), "")

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	require.Equal(t, "canteen", ambiguous.Kind)
	require.Len(t, ambiguous.Matches, len(ShortNames))
}

func TestResolveCanteenUnknown(t *testing.T) {
	_, _, err := ResolveCanteen(resolveSnapshot(), "Mensaria")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "canteen", notFound.Kind)
	require.Equal(t, "Mensaria", notFound.Query)
}

func TestResolveCanteenSuggestsClosestName(t *testing.T) {
	// a near-miss of "Adenauerring"
	_, _, err := ResolveCanteen(resolveSnapshot(), "adenauerring")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "Adenauerring", notFound.Suggestion)
}

func TestResolveCanteenKnownButNotScraped(t *testing.T) {
	// "Moltkestraße" is a valid short name but absent from the snapshot
	_, _, err := ResolveCanteen(resolveSnapshot(), "Moltke")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Empty(t, notFound.Suggestion)
}

func TestResolveLineSuffix(t *testing.T) {
	name, line, err := ResolveLine(resolveSnapshot(), "Aden", "1")
	require.NoError(t, err)
	require.Equal(t, "Linie 1", name)
	require.Equal(t, "Käsespätzle", line[0].Name)
}

func TestResolveLineFullName(t *testing.T) {
	name, _, err := ResolveLine(resolveSnapshot(), "Aden", "Schnitzelbar")
	require.NoError(t, err)
	require.Equal(t, "Schnitzelbar", name)
}

func TestResolveLineSlashSuffix(t *testing.T) {
	name, _, err := ResolveLine(resolveSnapshot(), "Aden", "5")
	require.NoError(t, err)
	require.Equal(t, "Linie 4/5", name)
}

func TestResolveLineUnknown(t *testing.T) {
	_, _, err := ResolveLine(resolveSnapshot(), "Aden", "Buffet")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "line", notFound.Kind)
}

func TestResolveLineAmbiguousCanteenWins(t *testing.T) {
	_, _, err := ResolveLine(resolveSnapshot(), "", "1")

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	require.Equal(t, "canteen", ambiguous.Kind)
}

func TestResolveErrorMessages(t *testing.T) {
	notFound := &NotFoundError{Kind: "canteen", Query: "adx", Suggestion: "Adenauerring"}
	require.Equal(t, `unknown canteen "adx" (did you mean "Adenauerring"?)`, notFound.Error())

	ambiguous := &AmbiguousError{Kind: "line", Query: "e", Matches: []string{"Linie 1", "Spätausgabe"}}
	require.Equal(t, `ambiguous line "e", matches: Linie 1, Spätausgabe`, ambiguous.Error())
}
