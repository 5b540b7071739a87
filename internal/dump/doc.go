// Package dump renders ber values for people and tools.
//
// Tree writes an indented text listing of a value tree, one element per
// line. Node is a JSON-friendly mirror of the value model: ToNode converts a
// decoded value into it and FromNode builds a value back, so a tree can be
// exported, edited by hand and encoded again:
//
//	{
//	  "type": "sequence",
//	  "children": [
//	    {"type": "integer", "value": "1"},
//	    {"type": "string", "value": "public"},
//	    {"type": "sequence", "tag": "0xA0", "children": [...]}
//	  ]
//	}
//
// For every value v, FromNode(ToNode(v)) encodes to the same bytes as v.
package dump
