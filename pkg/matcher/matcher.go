// Package matcher extracts request events from web application log lines.
package matcher

import (
	"regexp"
	"strings"

	"github.com/user/logreport/pkg/stats"
)

const (
	// requestMarker identifies entries written by the request handling logger.
	requestMarker = `django.request:`

	// serverErrorMarker replaces the method on unhandled exception entries.
	serverErrorMarker = `Internal Server Error:`

	// space matches any Unicode white space, not only ASCII, plus the
	// information separators U+001C to U+001F.
	space    = `[\s\x{0B}\x{1C}-\x{1F}\x{85}\p{Z}]`
	nonSpace = `[^\s\x{0B}\x{1C}-\x{1F}\x{85}\p{Z}]`
)

// methods lists the HTTP methods recognised in front of a request path.
var methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

// requestPattern is compiled once and shared by every Matcher.
var requestPattern = regexp.MustCompile(buildPattern())

// buildPattern assembles the combined expression:
//
//	LEVEL .*? django.request: (METHOD|Internal Server Error:) /path
func buildPattern() string {
	levels := make([]string, 0, 5)
	for _, l := range stats.Levels() {
		levels = append(levels, regexp.QuoteMeta(string(l)))
	}

	verbs := make([]string, 0, len(methods)+1)
	for _, m := range methods {
		verbs = append(verbs, regexp.QuoteMeta(m))
	}
	verbs = append(verbs, spaced(serverErrorMarker))

	return `(?P<level>` + strings.Join(levels, "|") + `)` +
		`.*?` + regexp.QuoteMeta(requestMarker) + space +
		`(?:` + strings.Join(verbs, "|") + `)` + space +
		`(?P<path>/` + nonSpace + `*)`
}

// spaced quotes a literal and lets each of its spaces match any white space.
func spaced(literal string) string {
	words := strings.Split(literal, " ")
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, space)
}

// Matcher classifies log lines as request events.
type Matcher struct {
	re       *regexp.Regexp
	levelIdx int
	pathIdx  int
}

// New returns a Matcher backed by the shared precompiled pattern.
func New() *Matcher {
	return &Matcher{
		re:       requestPattern,
		levelIdx: requestPattern.SubexpIndex("level"),
		pathIdx:  requestPattern.SubexpIndex("path"),
	}
}

// Match reports the event encoded by line, taking the leftmost match of the
// whole pattern. A line without a request event returns false.
func (m *Matcher) Match(line string) (stats.Event, bool) {
	sub := m.re.FindStringSubmatch(line)
	if sub == nil {
		return stats.Event{}, false
	}
	return stats.Event{
		Path:  sub[m.pathIdx],
		Level: stats.Level(sub[m.levelIdx]),
	}, true
}
