package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pathreach/analyzer/cmd"
	"github.com/pathreach/analyzer/model"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var solverErr *model.SolverError
		var internalErr *model.InternalError
		if errors.As(err, &solverErr) || errors.As(err, &internalErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
