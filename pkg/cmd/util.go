package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/fhelab/go-fhec/pkg/binfile"
	"github.com/fhelab/go-fhec/pkg/ir"
	"github.com/fhelab/go-fhec/pkg/msg"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a program file using a decoder based on the extension of the
// filename.
func readProgramFile(filename string) *ir.Program {
	var message *msg.Program
	//
	data, err := os.ReadFile(filename)
	//
	if err == nil {
		// Check file extension
		ext := path.Ext(filename)
		//
		switch ext {
		case ".json":
			message, err = msg.ProgramFromJsonBytes(data)
		case ".bin":
			var binf binfile.BinaryFile
			//
			if err = binf.UnmarshalBinary(data); err == nil {
				message = &binf.Program
			}
		default:
			err = fmt.Errorf("unknown program file format: %s", ext)
		}
	}
	//
	if err == nil {
		var program *ir.Program
		//
		if program, err = ir.DeserializeProgram(message); err == nil {
			return program
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Write a program file using an encoder based on the extension of the
// filename.
func writeProgramFile(program *ir.Program, filename string) {
	var (
		data    []byte
		err     error
		message = ir.SerializeProgram(program)
	)
	// Check file extension
	switch ext := path.Ext(filename); ext {
	case ".json":
		data, err = message.ToJsonBytes()
	case ".bin":
		data, err = binfile.NewBinaryFile(nil, message).MarshalBinary()
	default:
		err = fmt.Errorf("unknown program file format: %s", ext)
	}
	//
	if err == nil {
		err = os.WriteFile(filename, data, 0644)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}
