package opl

import (
	"github.com/osmium-go/osmcore/internal/entity"
	"github.com/osmium-go/osmcore/internal/location"
	"github.com/osmium-go/osmcore/internal/oerr"
)

// parseTagsSection decodes a comma-separated "key=value,key=value" list
// that continues until the next whitespace or end of line.
func parseTagsSection(data []byte, pos *int, b *entity.Builder) error {
	if *pos >= len(data) || isTerminator(data[*pos]) {
		return nil // an empty tag section is valid
	}
	for {
		key, err := parseString(data, pos)
		if err != nil {
			return err
		}
		if *pos >= len(data) || data[*pos] != '=' {
			return &oerr.OPLError{Msg: "expected '=' in tag"}
		}
		*pos++
		value, err := parseString(data, pos)
		if err != nil {
			return err
		}
		b.AddTag(key, value)
		if *pos < len(data) && data[*pos] == ',' {
			*pos++
			continue
		}
		return nil
	}
}

// parseWayNodesSection decodes a comma-separated "nID[xLON[yLAT]]" list.
func parseWayNodesSection(data []byte, pos *int, b *entity.Builder) error {
	if *pos >= len(data) || isTerminator(data[*pos]) {
		return nil
	}
	for {
		if *pos >= len(data) || data[*pos] != 'n' {
			return &oerr.OPLError{Msg: "expected 'n' in way node list"}
		}
		*pos++
		ref, err := parseInt[int64](data, pos)
		if err != nil {
			return err
		}
		var lon, lat float64
		if *pos < len(data) && data[*pos] == 'x' {
			*pos++
			var loc location.Location
			if err := loc.SetLonPartial(data, pos); err != nil {
				return err
			}
			lon = loc.Lon()
			if *pos < len(data) && data[*pos] == 'y' {
				*pos++
				if err := loc.SetLatPartial(data, pos); err != nil {
					return err
				}
				lat = loc.Lat()
			}
		}
		b.AddWayNode(ref, lon, lat)
		if *pos < len(data) && data[*pos] == ',' {
			*pos++
			continue
		}
		return nil
	}
}

// parseRelationMembersSection decodes a comma-separated
// "TYPEID@ROLE" list, where TYPE is one of 'n', 'w', 'r' and an empty
// role (nothing between '@' and the next comma/end) is valid.
func parseRelationMembersSection(data []byte, pos *int, b *entity.Builder) error {
	if *pos >= len(data) || isTerminator(data[*pos]) {
		return nil
	}
	for {
		if *pos >= len(data) {
			return &oerr.OPLError{Msg: "truncated relation member"}
		}
		var typ entity.MemberType
		switch data[*pos] {
		case 'n':
			typ = entity.MemberNode
		case 'w':
			typ = entity.MemberWay
		case 'r':
			typ = entity.MemberRelation
		default:
			return &oerr.OPLError{Msg: "unknown relation member type"}
		}
		*pos++
		ref, err := parseInt[int64](data, pos)
		if err != nil {
			return err
		}
		if *pos >= len(data) || data[*pos] != '@' {
			return &oerr.OPLError{Msg: "expected '@' in relation member"}
		}
		*pos++
		role, err := parseString(data, pos)
		if err != nil {
			return err
		}
		b.AddMember(typ, ref, role)
		if *pos < len(data) && data[*pos] == ',' {
			*pos++
			continue
		}
		return nil
	}
}
