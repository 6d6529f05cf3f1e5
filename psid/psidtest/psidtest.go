// Package psidtest builds sid files for tests.
package psidtest

import "encoding/binary"

// File describes a sid file to build. Zero fields get sensible defaults.
type File struct {
	Magic     string // PSID if empty
	Version   uint16 // 2 if zero
	Load      uint16 // header load address, 0 means embedded only
	Embedded  uint16 // little-endian load address prefixing the image
	Init      uint16
	Play      uint16
	Songs     uint8 // 1 if zero
	StartSong uint8 // 1 if zero
	Speed     uint32
	Flags     uint16
	Title     string
	Author    string
	Released  string
	Code      []byte // program image
}

// Bytes returns the encoded file, with a 0x7C bytes header.
func (f File) Bytes() []byte {
	const dataOffset = 0x7C

	if f.Magic == "" {
		f.Magic = "PSID"
	}
	if f.Version == 0 {
		f.Version = 2
	}
	if f.Songs == 0 {
		f.Songs = 1
	}
	if f.StartSong == 0 {
		f.StartSong = 1
	}

	buf := make([]byte, dataOffset+2+len(f.Code))
	copy(buf[0x00:], f.Magic)
	binary.BigEndian.PutUint16(buf[0x04:], f.Version)
	binary.BigEndian.PutUint16(buf[0x06:], dataOffset)
	binary.BigEndian.PutUint16(buf[0x08:], f.Load)
	binary.BigEndian.PutUint16(buf[0x0A:], f.Init)
	binary.BigEndian.PutUint16(buf[0x0C:], f.Play)
	buf[0x0F] = f.Songs
	buf[0x11] = f.StartSong
	binary.BigEndian.PutUint32(buf[0x12:], f.Speed)
	copy(buf[0x16:0x36], f.Title)
	copy(buf[0x36:0x56], f.Author)
	copy(buf[0x56:0x76], f.Released)
	binary.BigEndian.PutUint16(buf[0x76:], f.Flags)
	binary.LittleEndian.PutUint16(buf[dataOffset:], f.Embedded)
	copy(buf[dataOffset+2:], f.Code)
	return buf
}
