package main

import (
	"github.com/seqex/go-seqex/pkg/cmd"
)

func main() {
	cmd.Execute()
}
