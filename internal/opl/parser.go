// Package opl implements a byte-accurate decoder for the OSM Programming
// Language text format: one entity per line, fields in any order, errors
// carrying a line/column position resolved before they leave the parser.
package opl

import (
	"bufio"
	"io"
	"time"

	"github.com/osmium-go/osmcore/internal/entity"
	"github.com/osmium-go/osmcore/internal/location"
	"github.com/osmium-go/osmcore/internal/oerr"
)

const timestampLen = 20 // "2006-01-02T15:04:05Z"

// Parser decodes OPL text into an entity.Buffer, one line at a time.
type Parser struct {
	line int
}

// NewParser returns a Parser positioned before the first line.
func NewParser() *Parser {
	return &Parser{}
}

// ParseAll reads every line from r, appending a committed entity to buf
// for each non-blank, non-comment line. It stops at the first error,
// having rolled back to the last successfully committed line (the
// Buffer never holds a partial entity: see entity.Builder).
func (p *Parser) ParseAll(r io.Reader, buf *entity.Buffer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.ParseLine(scanner.Bytes(), buf); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ParseLine decodes a single OPL line (without its trailing newline) and,
// on success, commits the resulting entity to buf. Blank lines and lines
// starting with '#' are silently skipped, matching the text format's
// comment convention.
func (p *Parser) ParseLine(line []byte, buf *entity.Buffer) error {
	if len(line) == 0 {
		return nil
	}
	switch line[0] {
	case '#':
		return nil
	case 'n':
		return p.parseEntity(line, buf.NewNode())
	case 'w':
		return p.parseEntity(line, buf.NewWay())
	case 'r':
		return p.parseEntity(line, buf.NewRelation())
	case 'c':
		return p.parseEntity(line, buf.NewChangeset())
	default:
		return p.wrap(line, 0, &oerr.OPLError{Msg: "unknown type"})
	}
}

func (p *Parser) wrap(line []byte, pos int, base *oerr.OPLError) error {
	base.Offset = pos
	base.Line = p.line
	base.Column = pos + 1
	return base
}

// parseEntity drives the shared "type-char id, then space-separated
// fields in any order" grammar for all four entity kinds.
func (p *Parser) parseEntity(line []byte, b *entity.Builder) error {
	pos := 1 // skip the leading type char
	id, err := parseInt[int64](line, &pos)
	if err != nil {
		return p.wrap(line, pos, &oerr.OPLError{Msg: err.Error()})
	}
	setID(b, id)

	var lon, lat location.Location
	haveLon, haveLat := false, false

	for pos < len(line) {
		skipSpace(line, &pos)
		if pos >= len(line) {
			break
		}
		field := line[pos]
		pos++
		var ferr error
		switch field {
		case 'v':
			var v int32
			v, ferr = parseInt[int32](line, &pos)
			setVersion(b, v)
		case 'd':
			if b.Changeset() != nil {
				var n int32
				n, ferr = parseInt[int32](line, &pos)
				setNumComments(b, n)
				break
			}
			var visible bool
			visible, ferr = parseVisible(line, &pos)
			setVisible(b, visible)
		case 'c':
			var cs int64
			cs, ferr = parseInt[int64](line, &pos)
			setChangeset(b, cs)
		case 't':
			var ts time.Time
			ts, ferr = parseTimestamp(line, &pos)
			setTimestamp(b, ts)
		case 'i':
			var uid int32
			uid, ferr = parseInt[int32](line, &pos)
			setUID(b, uid)
		case 'u':
			var user string
			user, ferr = parseString(line, &pos)
			setUser(b, user)
		case 'T':
			ferr = parseTagsSection(line, &pos, b)
		case 'x':
			var v location.Location
			ferr = v.SetLonPartial(line, &pos)
			if b.Changeset() != nil {
				setMinLon(b, v.Lon())
			} else {
				lon, haveLon = v, true
			}
		case 'y':
			var v location.Location
			ferr = v.SetLatPartial(line, &pos)
			if b.Changeset() != nil {
				setMinLat(b, v.Lat())
			} else {
				lat, haveLat = v, true
			}
		case 'N':
			ferr = parseWayNodesSection(line, &pos, b)
		case 'M':
			ferr = parseRelationMembersSection(line, &pos, b)
		case 'k':
			var n int32
			n, ferr = parseInt[int32](line, &pos)
			setNumChanges(b, n)
		case 's':
			var ts time.Time
			ts, ferr = parseTimestamp(line, &pos)
			setCreatedAt(b, ts)
		case 'e':
			var ts time.Time
			ts, ferr = parseTimestamp(line, &pos)
			setClosedAt(b, ts)
		case 'X':
			var v location.Location
			ferr = v.SetLonPartial(line, &pos)
			setMaxLon(b, v.Lon())
		case 'Y':
			var v location.Location
			ferr = v.SetLatPartial(line, &pos)
			setMaxLat(b, v.Lat())
		default:
			ferr = &oerr.OPLError{Msg: "unknown field"}
		}
		if ferr != nil {
			if oe, ok := ferr.(*oerr.OPLError); ok {
				return p.wrap(line, pos, oe)
			}
			return p.wrap(line, pos, &oerr.OPLError{Msg: ferr.Error()})
		}
	}

	if haveLon && haveLat {
		setLocation(b, lon.Lon(), lat.Lat())
	}

	b.Commit()
	return nil
}
