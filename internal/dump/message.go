package dump

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
	"github.com/KilimcininKorOglu/snmpber/internal/snmp"
)

// Message writes a summary of m to w: a header line with the version,
// community and PDU fields, then one "name = value" line per varbind.
func Message(w io.Writer, m *snmp.Message) error {
	t := &treeWriter{w: w}

	switch {
	case m.Trap != nil:
		tr := m.Trap
		t.line(0, "%s community=%s %s enterprise=%s agent-addr=%s generic-trap=%s specific-trap=%d time-stamp=%d",
			m.Version, strconv.Quote(string(m.Community)), snmp.PDUTrap,
			tr.Enterprise, tr.AgentAddr, snmp.GenericTrapName(tr.GenericTrap), tr.SpecificTrap, tr.Timestamp)
		t.varBinds(tr.VarBinds)
	case m.PDU != nil:
		p := m.PDU
		if p.Type == snmp.PDUGetBulkRequest {
			t.line(0, "%s community=%s %s request-id=%d non-repeaters=%d max-repetitions=%d",
				m.Version, strconv.Quote(string(m.Community)), p.Type, p.RequestID, int32(p.ErrorStatus), p.ErrorIndex)
		} else {
			t.line(0, "%s community=%s %s request-id=%d error-status=%s error-index=%d",
				m.Version, strconv.Quote(string(m.Community)), p.Type, p.RequestID, p.ErrorStatus, p.ErrorIndex)
		}
		t.varBinds(p.VarBinds)
	default:
		return snmp.ErrNoPDU
	}
	return t.err
}

func (t *treeWriter) varBinds(vbs []snmp.VarBind) {
	for _, vb := range vbs {
		t.line(1, "%s = %s", vb.Name, varBindValue(vb))
	}
}

func varBindValue(vb snmp.VarBind) string {
	if name, ok := vb.Exception(); ok {
		return name
	}
	switch v := vb.Value.(type) {
	case *ber.Null:
		return "NULL"
	case *ber.OctetString:
		return fmt.Sprintf("%s %s", v.Kind(), quoteBytes(v.Bytes()))
	case *ber.Unknown:
		return fmt.Sprintf("[0x%02X] %s", v.Tag(), quoteBytes(v.Bytes()))
	case *ber.Sequence:
		return fmt.Sprintf("%s (%d items)", containerLabel(v), v.Len())
	case fmt.Stringer:
		return fmt.Sprintf("%s %s", vb.Value.Kind(), v.String())
	default:
		return vb.Value.Kind().String()
	}
}
