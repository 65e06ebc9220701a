package models

import "regexp"

// ExtractOLID pulls the identifier out of a catalog URL or path, given the
// resource-type segment that precedes it ("books", "authors", "works").
// The identifier is the alphanumeric run immediately after "/<type>/".
// A false return means the pattern was not found, which is a normal
// outcome: the field may be legitimately absent.
func ExtractOLID(rawURL, resourceType string) (string, bool) {
	re, err := regexp.Compile(`/` + regexp.QuoteMeta(resourceType) + `/([0-9a-zA-Z]+)`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}
