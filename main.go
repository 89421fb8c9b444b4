package main

import (
	"github.com/cmmoran/valuegen/cmd"
)

func main() {
	cmd.Execute()
}
