package main

import (
	_ "embed"

	"github.com/aigility/cloud-vault-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
