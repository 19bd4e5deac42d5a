package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/i474232898/conditions/internal/cli"
	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/weather"
)

func main() {
	root := cli.NewRootCmd(cli.DefaultBuilder)
	if err := root.ExecuteContext(context.Background()); err != nil {
		var exhausted *weather.ExhaustedError
		if errors.As(err, &exhausted) {
			for _, a := range exhausted.Attempts {
				logger.Debugf("attempt: %s", a)
			}
		}
		for e := err; e != nil; e = errors.Unwrap(e) {
			logger.Debugf("caused by: %T: %v", e, e)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
