package snmp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
)

var sysUpTime = ber.MustParseObjectID("1.3.6.1.2.1.1.3.0")

// getRequest is a v2c GetRequest for sysUpTime.0 with community "public".
var getRequest = []byte{
	0x30, 0x26,
	0x02, 0x01, 0x01,
	0x04, 0x06, 'p', 'u', 'b', 'l', 'i', 'c',
	0xA0, 0x19,
	0x02, 0x01, 0x01,
	0x02, 0x01, 0x00,
	0x02, 0x01, 0x00,
	0x30, 0x0E,
	0x30, 0x0C,
	0x06, 0x08, 0x2B, 0x06, 0x01, 0x02, 0x01, 0x01, 0x03, 0x00,
	0x05, 0x00,
}

func TestMessageMarshal(t *testing.T) {
	msg := &Message{
		Version:   Version2c,
		Community: []byte("public"),
		PDU: &PDU{
			Type:      PDUGetRequest,
			RequestID: 1,
			VarBinds:  []VarBind{NewVarBind(sysUpTime)},
		},
	}

	data, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, getRequest, data)
}

func TestParseMessage(t *testing.T) {
	msg, err := ParseMessage(getRequest)
	require.NoError(t, err)

	assert.Equal(t, Version2c, msg.Version)
	assert.Equal(t, []byte("public"), msg.Community)
	assert.Equal(t, PDUGetRequest, msg.Type())
	require.NotNil(t, msg.PDU)
	assert.Nil(t, msg.Trap)
	assert.Equal(t, int32(1), msg.PDU.RequestID)
	assert.Equal(t, NoError, msg.PDU.ErrorStatus)
	require.Len(t, msg.PDU.VarBinds, 1)
	assert.True(t, sysUpTime.Equal(msg.PDU.VarBinds[0].Name))
	assert.Equal(t, ber.KindNull, msg.PDU.VarBinds[0].Value.Kind())
}

func TestGetResponseRoundTrip(t *testing.T) {
	ifInOctets := ber.MustParseObjectID("1.3.6.1.2.1.2.2.1.10.1")
	sysDescr := ber.MustParseObjectID("1.3.6.1.2.1.1.1.0")
	addr, err := ber.ParseIPAddress("192.168.1.1")
	require.NoError(t, err)

	msg := &Message{
		Version:   Version2c,
		Community: []byte("private"),
		PDU: &PDU{
			Type:        PDUGetResponse,
			RequestID:   -559038737,
			ErrorStatus: NoError,
			VarBinds: []VarBind{
				{Name: sysUpTime, Value: ber.NewTimeTicks(4294967295)},
				{Name: ifInOctets, Value: ber.NewCounter(0x80000000)},
				{Name: sysDescr, Value: ber.NewOctetString([]byte("router"))},
				{Name: ber.MustParseObjectID("1.3.6.1.2.1.4.20.1.1.0"), Value: addr},
				{Name: ber.MustParseObjectID("1.3.6.1.2.1.31.1.1.1.6.1"), Value: ber.NewCounter64(1 << 40)},
				{Name: ber.MustParseObjectID("1.3.6.1.4.1.2021.9.1.9.1"), Value: ber.NewGauge(77)},
			},
		},
	}

	data, err := msg.Marshal()
	require.NoError(t, err)

	got, err := ParseMessage(data)
	require.NoError(t, err)
	require.NotNil(t, got.PDU)
	assert.Equal(t, msg.PDU.RequestID, got.PDU.RequestID)
	require.Len(t, got.PDU.VarBinds, len(msg.PDU.VarBinds))

	for i, vb := range msg.PDU.VarBinds {
		gvb := got.PDU.VarBinds[i]
		assert.True(t, vb.Name.Equal(gvb.Name), "varbind %d name", i)
		assert.Equal(t, vb.Value.Kind(), gvb.Value.Kind(), "varbind %d kind", i)
	}
	assert.Equal(t, uint32(4294967295), got.PDU.VarBinds[0].Value.(*ber.Unsigned).Value())
	assert.Equal(t, uint32(0x80000000), got.PDU.VarBinds[1].Value.(*ber.Unsigned).Value())
	assert.Equal(t, "router", got.PDU.VarBinds[2].Value.(*ber.OctetString).String())
	assert.Equal(t, "192.168.1.1", got.PDU.VarBinds[3].Value.(*ber.IPAddress).String())
	assert.Equal(t, uint64(1<<40), got.PDU.VarBinds[4].Value.(*ber.Counter64).Value())

	again, err := got.Marshal()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestTrapV1RoundTrip(t *testing.T) {
	agent, err := ber.ParseIPAddress("10.0.0.1")
	require.NoError(t, err)

	msg := &Message{
		Version:   Version1,
		Community: []byte("public"),
		Trap: &TrapV1{
			Enterprise:   ber.MustParseObjectID("1.3.6.1.4.1.8072.3.2.10"),
			AgentAddr:    agent,
			GenericTrap:  GenericTrapLinkDown,
			SpecificTrap: 0,
			Timestamp:    123456,
			VarBinds: []VarBind{
				{Name: ber.MustParseObjectID("1.3.6.1.2.1.2.2.1.1.2"), Value: ber.NewInteger(2)},
			},
		},
	}

	data, err := msg.Marshal()
	require.NoError(t, err)

	got, err := ParseMessage(data)
	require.NoError(t, err)
	assert.Equal(t, PDUTrap, got.Type())
	require.NotNil(t, got.Trap)
	assert.Nil(t, got.PDU)
	assert.True(t, msg.Trap.Enterprise.Equal(got.Trap.Enterprise))
	assert.Equal(t, "10.0.0.1", got.Trap.AgentAddr.String())
	assert.Equal(t, int32(GenericTrapLinkDown), got.Trap.GenericTrap)
	assert.Equal(t, uint32(123456), got.Trap.Timestamp)
	require.Len(t, got.Trap.VarBinds, 1)
	assert.Equal(t, int32(2), got.Trap.VarBinds[0].Value.(*ber.Integer).Value())
}

func TestMarshalLimit(t *testing.T) {
	vbs := make([]VarBind, 0, 64)
	for i := 0; i < 64; i++ {
		vbs = append(vbs, VarBind{
			Name:  ber.NewObjectID(1, 3, 6, 1, 2, 1, 2, 2, 1, 2, uint32(i)),
			Value: ber.NewOctetString([]byte("GigabitEthernet0/0/0")),
		})
	}
	msg := &Message{
		Version:   Version2c,
		Community: []byte("public"),
		PDU:       &PDU{Type: PDUGetResponse, RequestID: 9, VarBinds: vbs},
	}

	full, err := msg.Marshal()
	require.NoError(t, err)
	require.Greater(t, len(full), 484)

	_, err = msg.MarshalLimit(484)
	assert.ErrorIs(t, err, ber.ErrLengthLimit)

	data, err := msg.MarshalLimit(len(full))
	require.NoError(t, err)
	assert.Equal(t, full, data)
}

func TestMarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		err  error
	}{
		{"no PDU", &Message{Version: Version2c}, ErrNoPDU},
		{"trap tag in PDU", &Message{PDU: &PDU{Type: PDUTrap}}, ErrUnknownPDU},
		{"unknown tag", &Message{PDU: &PDU{Type: 0xA9}}, ErrUnknownPDU},
		{"trap without enterprise", &Message{Trap: &TrapV1{}}, ErrMalformed},
		{"varbind without name", &Message{PDU: &PDU{Type: PDUGetRequest, VarBinds: []VarBind{{}}}}, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.msg.Marshal()
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestVarBindNilValueEncodesNull(t *testing.T) {
	msg := &Message{
		Version:   Version2c,
		Community: []byte("public"),
		PDU: &PDU{
			Type:      PDUGetRequest,
			RequestID: 1,
			VarBinds:  []VarBind{{Name: sysUpTime}},
		},
	}
	data, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, getRequest, data)
}

func TestParseMessageErrors(t *testing.T) {
	withTag := func(tag byte) []byte {
		b := append([]byte(nil), getRequest...)
		b[13] = tag
		return b
	}
	withVersion := func(v byte) []byte {
		b := append([]byte(nil), getRequest...)
		b[4] = v
		return b
	}
	truncated := getRequest[:len(getRequest)-1]
	trailing := append(append([]byte(nil), getRequest...), 0x00)

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, ErrEmptyMessage},
		{"not a sequence", []byte{0x02, 0x01, 0x00}, ErrMalformed},
		{"v3", withVersion(3), ErrUnsupportedVersion},
		{"unknown version", withVersion(7), ErrUnsupportedVersion},
		{"unknown PDU", withTag(0xA9), ErrUnknownPDU},
		{"primitive PDU tag", withTag(0x02), ErrUnknownPDU},
		{"truncated", truncated, ber.ErrUnexpectedEOF},
		{"trailing data", trailing, ErrMalformed},
		{"trap layout mismatch", withTag(byte(PDUTrap)), ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseMessage(tt.data)
			require.Error(t, err)
			assert.Nil(t, msg)
			assert.ErrorIs(t, err, tt.err)
			if tt.err != ErrEmptyMessage {
				var pe *ParseError
				assert.True(t, errors.As(err, &pe))
			}
		})
	}
}

func TestParseMalformedFields(t *testing.T) {
	build := func(fields ...ber.Value) []byte {
		pdu := ber.NewTaggedSequence(byte(PDUGetResponse))
		for _, f := range fields {
			pdu.Append(f)
		}
		msg := ber.NewSequence()
		msg.AppendInteger(1)
		msg.AppendString([]byte("public"))
		msg.Append(pdu)
		data, err := ber.Marshal(msg)
		require.NoError(t, err)
		return data
	}
	pair := func(name, value ber.Value) *ber.Sequence {
		s := ber.NewSequence()
		s.Append(name)
		s.Append(value)
		return s
	}
	list := func(items ...ber.Value) *ber.Sequence {
		s := ber.NewSequence()
		for _, it := range items {
			s.Append(it)
		}
		return s
	}
	i := ber.NewInteger

	tests := []struct {
		name string
		data []byte
	}{
		{"too few fields", build(i(1), i(0), list())},
		{"string request-id", build(ber.NewOctetString([]byte("x")), i(0), i(0), list())},
		{"varbinds not a list", build(i(1), i(0), i(0), i(5))},
		{"varbind not a pair", build(i(1), i(0), i(0), list(list(sysUpTime)))},
		{"varbind name not an OID", build(i(1), i(0), i(0), list(pair(i(1), ber.NewNull())))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessage(tt.data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestVarBindException(t *testing.T) {
	data := []byte{
		0x30, 0x22,
		0x02, 0x01, 0x01,
		0x04, 0x06, 'p', 'u', 'b', 'l', 'i', 'c',
		0xA2, 0x15,
		0x02, 0x01, 0x01,
		0x02, 0x01, 0x00,
		0x02, 0x01, 0x00,
		0x30, 0x0A,
		0x30, 0x08,
		0x06, 0x04, 0x2B, 0x06, 0x01, 0x63,
		0x81, 0x00,
	}

	msg, err := ParseMessage(data)
	require.NoError(t, err)
	require.Len(t, msg.PDU.VarBinds, 1)

	name, ok := msg.PDU.VarBinds[0].Exception()
	assert.True(t, ok)
	assert.Equal(t, "noSuchInstance", name)

	_, ok = NewVarBind(sysUpTime).Exception()
	assert.False(t, ok)

	again, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "SNMPv2c", Version2c.String())
	assert.Equal(t, "Unknown(9)", Version(9).String())
	assert.Equal(t, "GetBulkRequest", PDUGetBulkRequest.String())
	assert.Equal(t, "Unknown(0xA9)", PDUType(0xA9).String())
	assert.True(t, PDUReport.Valid())
	assert.False(t, PDUType(0x30).Valid())
	assert.Equal(t, "noSuchName", NoSuchName.String())
	assert.Equal(t, "inconsistentName", InconsistentName.String())
	assert.Equal(t, "unknown(42)", ErrorStatus(42).String())
	assert.Equal(t, "linkUp", GenericTrapName(GenericTrapLinkUp))
	assert.Equal(t, "unknown(9)", GenericTrapName(9))
}
