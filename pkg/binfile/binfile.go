package binfile

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/fhelab/go-fhec/pkg/msg"
)

// ============================================================================
// Binary File Format
// ============================================================================

// FHECPROG is the identifier expected at the start of every program file.
var FHECPROG = [8]byte{'F', 'H', 'E', 'C', 'P', 'R', 'O', 'G'}

const (
	// BINFILE_MAJOR_VERSION determines the major version of the binary file
	// format.  Files with a different major version are rejected outright.
	BINFILE_MAJOR_VERSION = uint16(1)
	// BINFILE_MINOR_VERSION determines the minor version of the binary file
	// format.  Files with a different minor version remain readable.
	BINFILE_MINOR_VERSION = uint16(0)
)

// BinaryFile is a programmatic representation of an underlying program file:
// a structured header followed by a gob-encoded program message.
type BinaryFile struct {
	// Header for the binary file.
	Header Header
	// The serialized program itself.
	Program msg.Program
}

// NewBinaryFile constructs a new binary file around a given program, using
// the default header for the currently supported version.
func NewBinaryFile(metadata []byte, program *msg.Program) *BinaryFile {
	return &BinaryFile{
		Header{FHECPROG, BINFILE_MAJOR_VERSION, BINFILE_MINOR_VERSION, metadata},
		*program,
	}
}

// MarshalBinary converts this binary file into a sequence of bytes.
func (p *BinaryFile) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	// Marshal header
	headerBytes, err := p.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	//
	buffer.Write(headerBytes)
	// Gob-encode program payload
	encoder := gob.NewEncoder(&buffer)
	if err := encoder.Encode(&p.Program); err != nil {
		return nil, err
	}
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initializes this binary file from a sequence of bytes,
// rejecting data with the wrong identifier or an unsupported major version.
func (p *BinaryFile) UnmarshalBinary(data []byte) error {
	buffer := bytes.NewBuffer(data)
	// Unmarshal header
	if err := p.Header.UnmarshalBinary(buffer); err != nil {
		return err
	}
	// Check identifier
	if p.Header.Identifier != FHECPROG {
		return fmt.Errorf("not a program file (found identifier %q)", string(p.Header.Identifier[:]))
	}
	// Check major version
	if p.Header.MajorVersion != BINFILE_MAJOR_VERSION {
		return fmt.Errorf("unsupported program file version %d.%d",
			p.Header.MajorVersion, p.Header.MinorVersion)
	}
	// Gob-decode program payload
	decoder := gob.NewDecoder(buffer)
	//
	return decoder.Decode(&p.Program)
}

// ============================================================================
// Header
// ============================================================================

// Header provides a structured header for the binary file format.  In
// particular, it supports versioning and embedded (binary) metadata.
type Header struct {
	Identifier   [8]byte
	MajorVersion uint16
	MinorVersion uint16
	MetaData     []byte
}

// MarshalBinary converts this header into a sequence of bytes.  Observe that
// gob is deliberately not used here, so the header remains readable without
// being tied to that encoding scheme.
func (p *Header) MarshalBinary() ([]byte, error) {
	var (
		buffer     bytes.Buffer
		majorBytes [2]byte
		minorBytes [2]byte
		metaLength [4]byte
	)
	// Marshal version numbers
	binary.BigEndian.PutUint16(majorBytes[:], p.MajorVersion)
	binary.BigEndian.PutUint16(minorBytes[:], p.MinorVersion)
	binary.BigEndian.PutUint32(metaLength[:], uint32(len(p.MetaData)))
	// Write identifier
	buffer.Write(p.Identifier[:])
	// Write major version
	buffer.Write(majorBytes[:])
	// Write minor version
	buffer.Write(minorBytes[:])
	// Write metadata length
	buffer.Write(metaLength[:])
	// Write metadata itself
	buffer.Write(p.MetaData)
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initializes this header by consuming bytes from the front
// of a given buffer.
func (p *Header) UnmarshalBinary(buffer *bytes.Buffer) error {
	var (
		majorBytes [2]byte
		minorBytes [2]byte
		metaLength [4]byte
	)
	// Read identifier
	if _, err := buffer.Read(p.Identifier[:]); err != nil {
		return err
	}
	// Read major version
	if _, err := buffer.Read(majorBytes[:]); err != nil {
		return err
	}
	// Read minor version
	if _, err := buffer.Read(minorBytes[:]); err != nil {
		return err
	}
	// Read metadata length
	if _, err := buffer.Read(metaLength[:]); err != nil {
		return err
	}
	//
	p.MajorVersion = binary.BigEndian.Uint16(majorBytes[:])
	p.MinorVersion = binary.BigEndian.Uint16(minorBytes[:])
	// Read metadata itself
	n := binary.BigEndian.Uint32(metaLength[:])
	p.MetaData = make([]byte, n)
	//
	if _, err := buffer.Read(p.MetaData); err != nil {
		return err
	}
	// Done
	return nil
}
