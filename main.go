// Package main is the entry point for tvshowl.
package main

import (
	"github.com/samber/lo"
	"github.com/vonZeppelin/tvshowl/cmd"
	"github.com/vonZeppelin/tvshowl/config"
	"github.com/vonZeppelin/tvshowl/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
