package main

import (
	"github.com/grailbio/base/grail"
	"github.com/grailbio/intervalmemo/cmd/bio-interval-memo/cmd"
)

func main() {
	shutdown := grail.Init()
	defer shutdown()
	cmd.Run()
}
