package mensa

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCanteenJSONKeepsLineOrder(t *testing.T) {
	canteen := Canteen{}
	canteen.Add("Schnitzelbar", Line{{Name: "Schnitzel", Note: "mit Pommes", Price: "4,50 €", Tags: []string{"schwein"}}})
	canteen.Add("Linie 1", Line{{Name: "Käsespätzle", Price: "3,20 €", Tags: []string{"veggi"}}})
	canteen.Add("[Kœri]werk", Line{})

	encoded, err := json.Marshal(canteen)
	require.NoError(t, err)

	// the map would sort keys; the Order slice must win
	require.Equal(
		t,
		`{"Schnitzelbar":[{"name":"Schnitzel","note":"mit Pommes","price":"4,50 €","tags":["schwein"]}],`+
			`"Linie 1":[{"name":"Käsespätzle","note":"","price":"3,20 €","tags":["veggi"]}],`+
			`"[Kœri]werk":[]}`,
		string(encoded),
	)

	var decoded Canteen
	err = json.Unmarshal(encoded, &decoded)
	require.NoError(t, err)
	require.Equal(t, canteen.Order, decoded.Order)

	if diff := cmp.Diff(canteen.Lines["Schnitzelbar"], decoded.Lines["Schnitzelbar"]); diff != "" {
		t.Fatalf("round trip changed the line (-want +got):\n%s", diff)
	}
}

func TestCanteenAddKeepsFirstPosition(t *testing.T) {
	canteen := Canteen{}
	canteen.Add("Linie 1", Line{{Name: "alt"}})
	canteen.Add("Linie 2", Line{})
	canteen.Add("Linie 1", Line{{Name: "neu"}})

	require.Equal(t, []string{"Linie 1", "Linie 2"}, canteen.Order)
	require.Equal(t, "neu", canteen.Lines["Linie 1"][0].Name)
}

func TestCanteenUnmarshalRejectsNonObject(t *testing.T) {
	var canteen Canteen
	err := json.Unmarshal([]byte(`["Linie 1"]`), &canteen)
	require.Error(t, err)
}

func TestCanteenIsZero(t *testing.T) {
	var canteen Canteen
	require.True(t, canteen.IsZero())

	canteen.Add("Linie 1", Line{})
	require.False(t, canteen.IsZero())
}

func TestShortNamesResolveToThemselves(t *testing.T) {
	// every short name must be an unambiguous prefix of itself
	snapshot := Snapshot{}
	for _, canonical := range ShortNames {
		snapshot[canonical] = Canteen{Lines: map[string]Line{}}
	}
	for short, canonical := range ShortNames {
		name, _, err := ResolveCanteen(snapshot, short)
		require.NoError(t, err, "short name %q", short)
		require.Equal(t, canonical, name)
	}
}
