package normalize

import "regexp"

// Size triplets arrive slash- or hyphen-delimited ("53-19-142", "53/19/142"),
// sometimes with stray spaces around the delimiters.
var tripletRe = regexp.MustCompile(`(\d{2})\s*[-/]\s*(\d{2})\s*[-/]\s*(\d{2,3})`)

// eyeOnlyRe matches a bare two-digit eye size ("54" or "54mm").
var eyeOnlyRe = regexp.MustCompile(`^(\d{2})\s*(?:mm)?$`)

// SizeTriplet parses a combined size descriptor into eye/bridge/temple.
// A bare eye size yields only the eye component; anything unrecognizable
// yields three empty strings (a parse gap, not an error).
func SizeTriplet(s string) (eye, bridge, temple string) {
	if m := tripletRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2], m[3]
	}
	if m := eyeOnlyRe.FindStringSubmatch(CollapseSpace(s)); m != nil {
		return m[1], "", ""
	}
	return "", "", ""
}
