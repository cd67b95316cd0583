package mensa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// 0xfc is "ü" in latin-1 and never a valid utf-8 sequence start
var latin1 = []byte{0xfc, 0xdf}

func TestRepairEncodingValidPassthrough(t *testing.T) {
	page := []byte("<html><body><div>Käsespätzle für 3,20 €</div></body></html>")
	repaired, err := repairEncoding(page)
	require.NoError(t, err)
	require.Equal(t, page, repaired)
}

func TestRepairEncodingExcisesEnclosingDiv(t *testing.T) {
	var page []byte
	page = append(page, []byte(`<html><body><div id="keep">Gemüse</div><div class="teaser"><p>Men`)...)
	page = append(page, latin1...)
	page = append(page, []byte(`</p></div><div id="after">Preise</div></body></html>`)...)

	repaired, err := repairEncoding(page)
	require.NoError(t, err)
	require.Equal(
		t,
		`<html><body><div id="keep">Gemüse</div><div id="after">Preise</div></body></html>`,
		string(repaired),
	)
}

func TestRepairEncodingExcisesNestedDivOnly(t *testing.T) {
	var page []byte
	page = append(page, []byte(`<div id="outer"><div id="inner">bad: `)...)
	page = append(page, latin1...)
	page = append(page, []byte(`</div><span>ok</span></div>`)...)

	repaired, err := repairEncoding(page)
	require.NoError(t, err)
	require.Equal(t, `<div id="outer"><span>ok</span></div>`, string(repaired))
}

func TestRepairEncodingWithoutEnclosingDiv(t *testing.T) {
	var page []byte
	page = append(page, []byte("hello ")...)
	page = append(page, latin1...)
	page = append(page, []byte(" world")...)

	repaired, err := repairEncoding(page)
	require.NoError(t, err)
	require.Equal(t, "hello  world", string(repaired))
}

func TestRepairEncodingDoesNotMistakeTagPrefix(t *testing.T) {
	// "<divider" must not be treated as an opening div tag
	var page []byte
	page = append(page, []byte(`<divider><div><b>`)...)
	page = append(page, latin1...)
	page = append(page, []byte(`</b></div></divider>`)...)

	repaired, err := repairEncoding(page)
	require.NoError(t, err)
	require.Equal(t, `<divider></divider>`, string(repaired))
}
