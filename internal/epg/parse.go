package epg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse consumes an XMLTV-shaped document in a single forward pass and
// builds a Schedule from it.
//
// The parser is tolerant of malformed fragments: a channel without an id or
// display name, or a programme missing its channel, title, or positive
// timestamps, is skipped without aborting the pass. Only a syntax error that
// prevents further tokenization fails the whole parse.
func Parse(r io.Reader) (*Schedule, error) {
	dec := xml.NewDecoder(r)

	sched := newSchedule()

	var (
		inChannel   bool
		inProgramme bool
		channelID   string
		displayName string
		prog        Program
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("failed to parse EPG XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "channel":
				inChannel = true
				channelID = strings.TrimSpace(attr(el, "id"))
				displayName = ""
			case "display-name":
				// Keep the first non-empty display name only.
				text := elementText(dec, &el)
				if inChannel && displayName == "" {
					displayName = text
				}
			case "programme":
				inProgramme = true
				prog = Program{
					ChannelID: strings.TrimSpace(attr(el, "channel")),
					Start:     epochAttr(el, "start_timestamp"),
					End:       epochAttr(el, "stop_timestamp"),
				}
			case "title":
				text := elementText(dec, &el)
				if inProgramme {
					prog.Title = text
				}
			case "desc":
				text := elementText(dec, &el)
				if inProgramme {
					prog.Description = text
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "channel":
				if channelID != "" && displayName != "" {
					sched.registerChannel(channelID, displayName)
				}

				inChannel = false
				channelID = ""
				displayName = ""
			case "programme":
				if prog.ChannelID != "" && prog.Title != "" && prog.Start > 0 && prog.End > prog.Start {
					sched.addProgram(prog)
				}

				inProgramme = false
				prog = Program{}
			}
		}
	}

	sched.finish()

	return sched, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}

// epochAttr parses an integer timestamp attribute; missing or unparseable
// values become 0, which the programme acceptance check rejects.
func epochAttr(el xml.StartElement, name string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(attr(el, name)), 10, 64)
	if err != nil {
		return 0
	}

	return v
}

// elementText consumes the element and returns its trimmed character data.
// Decode errors yield an empty string so one broken element cannot abort
// the surrounding pass.
func elementText(dec *xml.Decoder, el *xml.StartElement) string {
	var node struct {
		Text string `xml:",chardata"`
	}

	if err := dec.DecodeElement(&node, el); err != nil {
		return ""
	}

	return strings.TrimSpace(node.Text)
}
