package main

import (
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/cli"
)

var (
	version = "0.1.0"
)

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
