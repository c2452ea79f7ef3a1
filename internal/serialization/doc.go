// Package serialization implements the .axl checkpoint container for
// named arrays.
//
//	v1 layout:
//	  [4 bytes: magic "AXLR"]
//	  [4 bytes: version (uint32 LE)]
//	  [4 bytes: flags (uint32 LE)]
//	  [8 bytes: header size (uint64 LE)]
//	  [JSON header]
//	  [padding to a 64-byte boundary]
//	  [data section: raw payloads at 64-byte aligned offsets]
//
//	v2 layout:
//	  [64-byte fixed header: magic, version, flags, header size,
//	   data size, SHA-256 checksum of the data section at 0x20]
//	  [JSON header]
//	  [padding to a 64-byte boundary]
//	  [data section]
//
// The JSON header lists every entry with its name, element type, axes
// as (name, size) pairs, offset, and size, so arrays round-trip with
// their axis names. Readers validate entry tables before touching the
// data section; v2 readers verify the checksum on open unless asked
// not to.
package serialization
