// Package snmp builds and parses SNMP messages on top of the ber value model.
package snmp

import (
	"fmt"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
)

// Value builds the BER value tree of the message:
//
//	Message ::= SEQUENCE {
//	    version   INTEGER,
//	    community OCTET STRING,
//	    data      PDUs
//	}
func (m *Message) Value() (*ber.Sequence, error) {
	msg := ber.NewSequence()
	msg.AppendInteger(int32(m.Version))
	msg.AppendString(m.Community)

	switch {
	case m.Trap != nil:
		if m.Trap.Enterprise == nil || m.Trap.AgentAddr == nil {
			return nil, fmt.Errorf("%w: trap needs enterprise and agent-addr", ErrMalformed)
		}
		list, err := varBindList(m.Trap.VarBinds)
		if err != nil {
			return nil, err
		}
		msg.Append(m.Trap.value(list))
	case m.PDU != nil:
		if !m.PDU.Type.Valid() || m.PDU.Type == PDUTrap {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPDU, m.PDU.Type)
		}
		list, err := varBindList(m.PDU.VarBinds)
		if err != nil {
			return nil, err
		}
		msg.Append(m.PDU.value(list))
	default:
		return nil, ErrNoPDU
	}
	return msg, nil
}

// Marshal returns the BER encoding of the message.
func (m *Message) Marshal() ([]byte, error) {
	v, err := m.Value()
	if err != nil {
		return nil, err
	}
	return ber.Marshal(v)
}

// MarshalLimit is Marshal with a cap on the encoded size, as imposed by the
// maximum message size of the transport. It fails with ber.ErrLengthLimit
// instead of producing an oversized message.
func (m *Message) MarshalLimit(maxLen int) ([]byte, error) {
	v, err := m.Value()
	if err != nil {
		return nil, err
	}
	enc := ber.NewEncoder(v.EncodedLen())
	if err := v.EncodeLimit(enc, maxLen); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

func (p *PDU) value(list *ber.Sequence) *ber.Sequence {
	s := ber.NewTaggedSequence(byte(p.Type))
	s.AppendInteger(p.RequestID)
	s.AppendInteger(int32(p.ErrorStatus))
	s.AppendInteger(p.ErrorIndex)
	s.Append(list)
	return s
}

func (t *TrapV1) value(list *ber.Sequence) *ber.Sequence {
	s := ber.NewTaggedSequence(byte(PDUTrap))
	s.Append(t.Enterprise)
	s.Append(t.AgentAddr)
	s.AppendInteger(t.GenericTrap)
	s.AppendInteger(t.SpecificTrap)
	s.Append(ber.NewTimeTicks(t.Timestamp))
	s.Append(list)
	return s
}

func varBindList(vbs []VarBind) (*ber.Sequence, error) {
	list := ber.NewSequence()
	for i, vb := range vbs {
		if vb.Name == nil {
			return nil, fmt.Errorf("%w: varbind %d has no name", ErrMalformed, i)
		}
		item := ber.NewSequence()
		item.Append(vb.Name)
		if vb.Value == nil {
			item.AppendNull()
		} else {
			item.Append(vb.Value)
		}
		list.Append(item)
	}
	return list, nil
}

// ParseMessage parses a BER-encoded SNMPv1 or SNMPv2c message.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, ErrEmptyMessage
	}

	dec := ber.NewDecoder(data)

	h, err := dec.ReadHeader()
	if err != nil {
		return nil, NewParseError(0, "expected SEQUENCE for message", err)
	}
	if h.Tag != ber.TagSequence {
		return nil, NewParseError(0, fmt.Sprintf("message tag 0x%02X is not SEQUENCE", h.Tag), ErrMalformed)
	}
	end := dec.Offset() + h.Length

	version := &ber.Integer{}
	if err := version.Decode(dec); err != nil {
		return nil, NewParseError(dec.Offset(), "failed to read version", err)
	}
	msg := &Message{Version: Version(version.Value())}
	if msg.Version != Version1 && msg.Version != Version2c {
		return nil, NewParseError(dec.Offset(), msg.Version.String(), ErrUnsupportedVersion)
	}

	community := ber.NewOctetString(nil)
	if err := community.Decode(dec); err != nil {
		return nil, NewParseError(dec.Offset(), "failed to read community", err)
	}
	msg.Community = community.Bytes()

	pduStart := dec.Offset()
	tag, err := dec.PeekTag()
	if err != nil {
		return nil, NewParseError(pduStart, "missing PDU", err)
	}
	pduType := PDUType(tag)
	if !pduType.Valid() {
		return nil, NewParseError(pduStart, pduType.String(), ErrUnknownPDU)
	}

	body := ber.NewTaggedSequence(tag)
	if err := body.Decode(dec); err != nil {
		return nil, NewParseError(pduStart, "failed to decode "+pduType.String(), err)
	}
	if dec.Offset() != end || dec.Remaining() != 0 {
		return nil, NewParseError(dec.Offset(), "PDU does not end the message", ErrMalformed)
	}

	if pduType == PDUTrap {
		msg.Trap, err = parseTrapV1(body)
	} else {
		msg.PDU, err = parsePDU(pduType, body)
	}
	if err != nil {
		return nil, NewParseError(pduStart, pduType.String(), err)
	}
	return msg, nil
}

func parsePDU(pduType PDUType, s *ber.Sequence) (*PDU, error) {
	if s.Len() != 4 {
		return nil, fmt.Errorf("%w: PDU has %d fields, want 4", ErrMalformed, s.Len())
	}
	requestID, err := integerField(s, 0, "request-id")
	if err != nil {
		return nil, err
	}
	errorStatus, err := integerField(s, 1, "error-status")
	if err != nil {
		return nil, err
	}
	errorIndex, err := integerField(s, 2, "error-index")
	if err != nil {
		return nil, err
	}
	vbs, err := parseVarBinds(s.At(3))
	if err != nil {
		return nil, err
	}
	return &PDU{
		Type:        pduType,
		RequestID:   requestID,
		ErrorStatus: ErrorStatus(errorStatus),
		ErrorIndex:  errorIndex,
		VarBinds:    vbs,
	}, nil
}

func parseTrapV1(s *ber.Sequence) (*TrapV1, error) {
	if s.Len() != 6 {
		return nil, fmt.Errorf("%w: Trap-PDU has %d fields, want 6", ErrMalformed, s.Len())
	}
	enterprise, ok := s.At(0).(*ber.ObjectID)
	if !ok {
		return nil, fieldKindError("enterprise", s.At(0), ber.KindObjectID)
	}
	agentAddr, ok := s.At(1).(*ber.IPAddress)
	if !ok {
		return nil, fieldKindError("agent-addr", s.At(1), ber.KindIPAddress)
	}
	generic, err := integerField(s, 2, "generic-trap")
	if err != nil {
		return nil, err
	}
	specific, err := integerField(s, 3, "specific-trap")
	if err != nil {
		return nil, err
	}
	timestamp, ok := s.At(4).(*ber.Unsigned)
	if !ok || timestamp.Kind() != ber.KindTimeTicks {
		return nil, fieldKindError("time-stamp", s.At(4), ber.KindTimeTicks)
	}
	vbs, err := parseVarBinds(s.At(5))
	if err != nil {
		return nil, err
	}
	return &TrapV1{
		Enterprise:   enterprise,
		AgentAddr:    agentAddr,
		GenericTrap:  generic,
		SpecificTrap: specific,
		Timestamp:    timestamp.Value(),
		VarBinds:     vbs,
	}, nil
}

func parseVarBinds(v ber.Value) ([]VarBind, error) {
	list, ok := v.(*ber.Sequence)
	if !ok || list.Tag() != ber.TagSequence {
		return nil, fieldKindError("variable-bindings", v, ber.KindSequence)
	}

	vbs := make([]VarBind, 0, list.Len())
	for i, item := range list.Children() {
		pair, ok := item.(*ber.Sequence)
		if !ok || pair.Tag() != ber.TagSequence || pair.Len() != 2 {
			return nil, fmt.Errorf("%w: varbind %d is not a name/value pair", ErrMalformed, i)
		}
		name, ok := pair.At(0).(*ber.ObjectID)
		if !ok {
			return nil, fieldKindError(fmt.Sprintf("varbind %d name", i), pair.At(0), ber.KindObjectID)
		}
		vbs = append(vbs, VarBind{Name: name, Value: pair.At(1)})
	}
	return vbs, nil
}

func integerField(s *ber.Sequence, i int, field string) (int32, error) {
	v, ok := s.At(i).(*ber.Integer)
	if !ok {
		return 0, fieldKindError(field, s.At(i), ber.KindInteger)
	}
	return v.Value(), nil
}

func fieldKindError(field string, got ber.Value, want ber.Kind) error {
	return fmt.Errorf("%w: %s is %s, want %s", ErrMalformed, field, got.Kind(), want)
}
