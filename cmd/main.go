package main

import "github.com/fhelab/go-fhec/pkg/cmd"

func main() {
	cmd.Execute()
}
