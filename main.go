package main

import (
	"github.com/iankressin/eql-sub000/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
