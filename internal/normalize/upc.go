package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

var upcSegmentRe = regexp.MustCompile(`^\d{11,14}$`)

// linkProtectionHosts are the corporate link-rewriting services seen in
// forwarded vendor emails. The original target sits in a query parameter.
var linkProtectionParams = map[string]string{
	"safelinks.protection.outlook.com": "url",
	"urldefense.com":                   "u",
	"urldefense.proofpoint.com":        "u",
	"linkprotect.cudasvc.com":          "a",
}

// UnwrapLink undoes link-protection redirection wrappers, returning the
// original target URL. Unwrapped or unrecognizable input is returned as-is.
func UnwrapLink(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	for host, param := range linkProtectionParams {
		if !strings.HasSuffix(u.Host, host) {
			continue
		}
		inner := u.Query().Get(param)
		if inner == "" {
			return raw
		}
		if decoded, err := url.QueryUnescape(inner); err == nil {
			return decoded
		}
		return inner
	}
	return raw
}

// UPCFromImageURL extracts a UPC embedded as the final path segment of a
// product-image URL, after undoing percent-encoding and link-protection
// wrappers. Returns "" when the segment is not a plausible UPC.
func UPCFromImageURL(raw string) string {
	target := UnwrapLink(raw)

	u, err := url.Parse(target)
	if err != nil {
		return ""
	}

	path := u.Path
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}

	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 {
		return ""
	}
	last := segs[len(segs)-1]

	// Strip an image extension ("00882663450138.jpg").
	if i := strings.LastIndex(last, "."); i > 0 {
		last = last[:i]
	}

	if upcSegmentRe.MatchString(last) {
		return last
	}
	return ""
}
