package mensa

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

// The upstream page declares utf-8 but historically ships a handful of
// latin-1 bytes inside one div of boilerplate markup. The original
// workaround cut a hardcoded byte range (4930-5350); that range moves
// whenever the page layout shifts, so instead we look for the first
// byte sequence that does not decode and excise the innermost div
// element enclosing it. If no enclosing div can be delimited, only the
// invalid run itself is dropped.

const maxRepairPasses = 8

var errUndecodable = errors.New("page is not valid utf-8 after repair")

func repairEncoding(raw []byte) ([]byte, error) {
	for pass := 0; pass < maxRepairPasses; pass++ {
		if utf8.Valid(raw) {
			return raw, nil
		}

		bad := firstInvalidOffset(raw)
		start, end, ok := enclosingDiv(raw, bad)
		if !ok {
			start, end = bad, invalidRunEnd(raw, bad)
		}
		raw = append(raw[:start:start], raw[end:]...)
	}
	if utf8.Valid(raw) {
		return raw, nil
	}
	return nil, errUndecodable
}

func firstInvalidOffset(raw []byte) int {
	offset := 0
	for offset < len(raw) {
		r, size := utf8.DecodeRune(raw[offset:])
		if r == utf8.RuneError && size == 1 {
			return offset
		}
		offset += size
	}
	return -1
}

func invalidRunEnd(raw []byte, start int) int {
	end := start
	for end < len(raw) {
		r, size := utf8.DecodeRune(raw[end:])
		if r != utf8.RuneError || size != 1 {
			break
		}
		end += size
	}
	return end
}

var divOpen = []byte("<div")
var divClose = []byte("</div")

// enclosingDiv finds the byte range [start, end) of the innermost div
// element containing offset `at`. Candidate opening tags are tried
// right-to-left; one whose matching close sits past `at` encloses it.
func enclosingDiv(raw []byte, at int) (int, int, bool) {
	searchEnd := at
	for {
		start := bytes.LastIndex(raw[:searchEnd], divOpen)
		if start < 0 {
			return 0, 0, false
		}
		searchEnd = start

		if !tagBoundary(raw, start+len(divOpen)) {
			continue
		}
		end, ok := matchingDivClose(raw, start)
		if ok && end > at {
			return start, end, true
		}
	}
}

// tagBoundary reports whether the byte at `i` terminates a div tag
// name, so "<divider" is not mistaken for an opening tag.
func tagBoundary(raw []byte, i int) bool {
	if i >= len(raw) {
		return false
	}
	switch raw[i] {
	case ' ', '\t', '\n', '\r', '>', '/':
		return true
	}
	return false
}

func matchingDivClose(raw []byte, open int) (int, bool) {
	depth := 0
	i := open
	for i < len(raw) {
		if bytes.HasPrefix(raw[i:], divClose) {
			depth--
			gt := bytes.IndexByte(raw[i:], '>')
			if gt < 0 {
				return 0, false
			}
			if depth == 0 {
				return i + gt + 1, true
			}
			i += gt + 1
			continue
		}
		if bytes.HasPrefix(raw[i:], divOpen) && tagBoundary(raw, i+len(divOpen)) {
			depth++
			gt := bytes.IndexByte(raw[i:], '>')
			if gt < 0 {
				return 0, false
			}
			i += gt + 1
			continue
		}
		i++
	}
	return 0, false
}
