package binfile

import (
	"reflect"
	"testing"

	"github.com/fhelab/go-fhec/pkg/msg"
)

func Test_BinFile_01(t *testing.T) {
	// Program survives a binary round trip
	binf := NewBinaryFile([]byte("metadata"), testProgram())
	//
	data, err := binf.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	//
	var back BinaryFile
	//
	if err := back.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	//
	if back.Header.MajorVersion != BINFILE_MAJOR_VERSION {
		t.Errorf("expected major version %d, got %d", BINFILE_MAJOR_VERSION, back.Header.MajorVersion)
	}
	//
	if string(back.Header.MetaData) != "metadata" {
		t.Errorf("expected metadata preserved, got %q", back.Header.MetaData)
	}
	//
	if !reflect.DeepEqual(binf.Program, back.Program) {
		t.Errorf("expected program preserved")
	}
}

func Test_BinFile_02(t *testing.T) {
	// Wrong identifier is rejected
	binf := NewBinaryFile(nil, testProgram())
	binf.Header.Identifier = [8]byte{'N', 'O', 'T', 'A', 'P', 'R', 'O', 'G'}
	//
	data, err := binf.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	//
	var back BinaryFile
	//
	if err := back.UnmarshalBinary(data); err == nil {
		t.Errorf("expected identifier rejection")
	}
}

func Test_BinFile_03(t *testing.T) {
	// Unsupported major version is rejected
	binf := NewBinaryFile(nil, testProgram())
	binf.Header.MajorVersion = BINFILE_MAJOR_VERSION + 1
	//
	data, err := binf.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	//
	var back BinaryFile
	//
	if err := back.UnmarshalBinary(data); err == nil {
		t.Errorf("expected version rejection")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func testProgram() *msg.Program {
	rotation := int32(2)
	//
	return &msg.Program{
		Name:    "axpy",
		VecSize: 8,
		Terms: []msg.Term{
			{Op: 1},
			{Op: 3, Constant: &msg.ConstantValue{Size: 8, Values: []float64{1, 2}}},
			{Op: 7, Operands: []uint64{0, 1}},
			{Op: 8, Operands: []uint64{2}, Rotation: &rotation},
			{Op: 2, Operands: []uint64{3}},
		},
		Inputs:  map[string]uint64{"x": 0},
		Outputs: map[string]uint64{"r": 4},
	}
}
