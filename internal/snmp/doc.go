// Package snmp builds and parses SNMP messages on top of the ber value model.
//
// # Messages
//
// A Message carries a version, a community string and exactly one PDU. The
// SNMPv1 Trap-PDU has its own layout and is held in Message.Trap; every other
// PDU type shares the request-id, error-status, error-index and
// variable-bindings layout of PDU.
//
// Building a request:
//
//	msg := &snmp.Message{
//	    Version:   snmp.Version2c,
//	    Community: []byte("public"),
//	    PDU: &snmp.PDU{
//	        Type:      snmp.PDUGetRequest,
//	        RequestID: 1,
//	        VarBinds:  []snmp.VarBind{snmp.NewVarBind(ber.MustParseObjectID("1.3.6.1.2.1.1.3.0"))},
//	    },
//	}
//	data, err := msg.MarshalLimit(1472)
//
// Parsing a response:
//
//	msg, err := snmp.ParseMessage(data)
//	if err != nil {
//	    return err
//	}
//	for _, vb := range msg.PDU.VarBinds {
//	    if name, ok := vb.Exception(); ok {
//	        log.Printf("%s: %s", vb.Name, name)
//	    }
//	}
//
// Parse failures are reported as *ParseError wrapping one of the package
// sentinel errors or a ber error, so callers can test with errors.Is.
//
// SNMPv3 messages are recognized by version and rejected with
// ErrUnsupportedVersion.
package snmp
