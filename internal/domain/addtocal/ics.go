package addtocal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/aikyam/site/internal/domain/model"
)

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

// WriteICS writes a VCALENDAR holding every dated event. Undated events are
// skipped. now stamps DTSTAMP.
func (b *Builder) WriteICS(w io.Writer, calName string, events []model.Event, now time.Time) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		writeFolded(bw, fmt.Sprintf(format, args...))
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", b.productID)
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	if calName != "" {
		line("X-WR-CALNAME:%s", icsEscaper.Replace(calName))
	}

	stamp := now.UTC().Format(compactUTC)
	for _, e := range events {
		start, ok := e.StartIn(b.loc)
		if !ok {
			continue
		}
		end, _ := e.EndIn(b.loc, b.duration)

		line("BEGIN:VEVENT")
		line("UID:%s", b.uid(e, start))
		line("DTSTAMP:%s", stamp)
		line("DTSTART:%s", start.UTC().Format(compactUTC))
		line("DTEND:%s", end.UTC().Format(compactUTC))
		line("SUMMARY:%s", icsEscaper.Replace(e.Title))
		desc := e.Desc
		if desc == "" {
			desc = e.Summary
		}
		if desc == "" {
			desc = defaultDescription
		}
		line("DESCRIPTION:%s", icsEscaper.Replace(desc))
		if e.Location != "" {
			line("LOCATION:%s", icsEscaper.Replace(e.Location))
		}
		line("END:VEVENT")
	}
	line("END:VCALENDAR")
	return bw.Flush()
}

// maxLineOctets is the content line limit before folding.
const maxLineOctets = 75

// writeFolded writes one content line, folding it with CRLF and a leading
// space so no physical line exceeds maxLineOctets. Folds never split a
// UTF-8 sequence.
func writeFolded(w *bufio.Writer, s string) {
	limit := maxLineOctets
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		_, _ = w.WriteString(s[:cut])
		_, _ = w.WriteString("\r\n ")
		s = s[cut:]
		limit = maxLineOctets - 1
	}
	_, _ = w.WriteString(s)
	_, _ = w.WriteString("\r\n")
}

// uid is stable across downloads so calendar clients update rather than
// duplicate an imported event.
func (b *Builder) uid(e model.Event, start time.Time) string {
	if e.ID != "" {
		return e.ID + "@" + b.uidDomain
	}
	key := e.Title + "|" + start.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + "@" + b.uidDomain
}
