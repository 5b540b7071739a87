// Package snmp builds and parses SNMP messages on top of the ber value model.
package snmp

import (
	"fmt"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
)

// Version is the msgVersion field of an SNMP message.
type Version int32

// SNMP version constants
const (
	Version1  Version = 0
	Version2c Version = 1
	Version3  Version = 3
)

// String returns the human-readable name of an SNMP version.
func (v Version) String() string {
	switch v {
	case Version1:
		return "SNMPv1"
	case Version2c:
		return "SNMPv2c"
	case Version3:
		return "SNMPv3"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(v))
	}
}

// PDUType is the context-specific constructed tag that identifies a PDU.
type PDUType byte

// SNMP PDU type constants
const (
	PDUGetRequest     PDUType = 0xA0
	PDUGetNextRequest PDUType = 0xA1
	PDUGetResponse    PDUType = 0xA2
	PDUSetRequest     PDUType = 0xA3
	PDUTrap           PDUType = 0xA4
	PDUGetBulkRequest PDUType = 0xA5
	PDUInformRequest  PDUType = 0xA6
	PDUTrapV2         PDUType = 0xA7
	PDUReport         PDUType = 0xA8
)

// String returns the human-readable name of a PDU type.
func (t PDUType) String() string {
	switch t {
	case PDUGetRequest:
		return "GetRequest"
	case PDUGetNextRequest:
		return "GetNextRequest"
	case PDUGetResponse:
		return "GetResponse"
	case PDUSetRequest:
		return "SetRequest"
	case PDUTrap:
		return "Trap"
	case PDUGetBulkRequest:
		return "GetBulkRequest"
	case PDUInformRequest:
		return "InformRequest"
	case PDUTrapV2:
		return "TrapV2"
	case PDUReport:
		return "Report"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", byte(t))
	}
}

// Valid reports whether t is one of the nine defined PDU tags.
func (t PDUType) Valid() bool {
	return t >= PDUGetRequest && t <= PDUReport
}

// ErrorStatus is the error-status field of a response PDU.
type ErrorStatus int32

// SNMP error status constants
const (
	NoError             ErrorStatus = 0
	TooBig              ErrorStatus = 1
	NoSuchName          ErrorStatus = 2
	BadValue            ErrorStatus = 3
	ReadOnly            ErrorStatus = 4
	GenErr              ErrorStatus = 5
	NoAccess            ErrorStatus = 6
	WrongType           ErrorStatus = 7
	WrongLength         ErrorStatus = 8
	WrongEncoding       ErrorStatus = 9
	WrongValue          ErrorStatus = 10
	NoCreation          ErrorStatus = 11
	InconsistentValue   ErrorStatus = 12
	ResourceUnavailable ErrorStatus = 13
	CommitFailed        ErrorStatus = 14
	UndoFailed          ErrorStatus = 15
	AuthorizationError  ErrorStatus = 16
	NotWritable         ErrorStatus = 17
	InconsistentName    ErrorStatus = 18
)

var errorStatusNames = [...]string{
	"noError", "tooBig", "noSuchName", "badValue", "readOnly", "genErr",
	"noAccess", "wrongType", "wrongLength", "wrongEncoding", "wrongValue",
	"noCreation", "inconsistentValue", "resourceUnavailable", "commitFailed",
	"undoFailed", "authorizationError", "notWritable", "inconsistentName",
}

// String returns the RFC 3416 name of the status.
func (s ErrorStatus) String() string {
	if s >= 0 && int(s) < len(errorStatusNames) {
		return errorStatusNames[s]
	}
	return fmt.Sprintf("unknown(%d)", int32(s))
}

// GenericTrap constants for SNMP v1 traps
const (
	GenericTrapColdStart             = 0
	GenericTrapWarmStart             = 1
	GenericTrapLinkDown              = 2
	GenericTrapLinkUp                = 3
	GenericTrapAuthenticationFailure = 4
	GenericTrapEgpNeighborLoss       = 5
	GenericTrapEnterpriseSpecific    = 6
)

// GenericTrapName returns the human-readable name of a generic trap type.
func GenericTrapName(trapType int32) string {
	switch trapType {
	case GenericTrapColdStart:
		return "coldStart"
	case GenericTrapWarmStart:
		return "warmStart"
	case GenericTrapLinkDown:
		return "linkDown"
	case GenericTrapLinkUp:
		return "linkUp"
	case GenericTrapAuthenticationFailure:
		return "authenticationFailure"
	case GenericTrapEgpNeighborLoss:
		return "egpNeighborLoss"
	case GenericTrapEnterpriseSpecific:
		return "enterpriseSpecific"
	default:
		return fmt.Sprintf("unknown(%d)", trapType)
	}
}

// SNMPv2 exception tags carried in place of a varbind value.
const (
	TagNoSuchObject   = 0x80
	TagNoSuchInstance = 0x81
	TagEndOfMibView   = 0x82
)

// VarBind pairs an object name with its value.
type VarBind struct {
	Name  *ber.ObjectID
	Value ber.Value
}

// NewVarBind returns a varbind for name with a NULL value, the form used in
// Get and GetNext requests.
func NewVarBind(name *ber.ObjectID) VarBind {
	return VarBind{Name: name, Value: ber.NewNull()}
}

// Exception returns the SNMPv2 exception name when the value is one of
// noSuchObject, noSuchInstance or endOfMibView.
func (vb VarBind) Exception() (string, bool) {
	u, ok := vb.Value.(*ber.Unknown)
	if !ok {
		return "", false
	}
	switch u.Tag() {
	case TagNoSuchObject:
		return "noSuchObject", true
	case TagNoSuchInstance:
		return "noSuchInstance", true
	case TagEndOfMibView:
		return "endOfMibView", true
	}
	return "", false
}

// PDU is every non-v1-trap PDU. For GetBulkRequest, ErrorStatus and
// ErrorIndex carry non-repeaters and max-repetitions.
type PDU struct {
	Type        PDUType
	RequestID   int32
	ErrorStatus ErrorStatus
	ErrorIndex  int32
	VarBinds    []VarBind
}

// TrapV1 is the SNMPv1 Trap-PDU.
type TrapV1 struct {
	Enterprise   *ber.ObjectID
	AgentAddr    *ber.IPAddress
	GenericTrap  int32
	SpecificTrap int32
	Timestamp    uint32
	VarBinds     []VarBind
}

// Message is an SNMPv1 or SNMPv2c message. Exactly one of PDU and Trap is set.
type Message struct {
	Version   Version
	Community []byte
	PDU       *PDU
	Trap      *TrapV1
}

// Type returns the PDU tag of the message.
func (m *Message) Type() PDUType {
	if m.Trap != nil {
		return PDUTrap
	}
	if m.PDU != nil {
		return m.PDU.Type
	}
	return 0
}
