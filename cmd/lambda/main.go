package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/mrled/palcheck/internal/lambdahandlers/httpapi"
	"github.com/mrled/palcheck/internal/lambdahandlers/streamer"
	"github.com/mrled/palcheck/internal/logger"
)

// starters build a handler and hand it to the Lambda runtime, keyed by LAMBDA_HANDLER.
// httpapi answers palindrome checks over API Gateway; streamer keeps the
// published checks.json in S3 in step with the checks table.
var starters = map[string]func() error{
	"httpapi": func() error {
		h, err := httpapi.NewHandler()
		if err != nil {
			return err
		}
		lambda.Start(h.Handle)
		return nil
	},
	"streamer": func() error {
		h, err := streamer.NewHandler()
		if err != nil {
			return err
		}
		lambda.Start(h.Handle)
		return nil
	},
}

func handlerNames() string {
	names := make([]string, 0, len(starters))
	for name := range starters {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func main() {
	log := logger.WithService(logger.NewDefaultLogger(), "palcheck")
	log = logger.WithExecutable(log, "lambda")
	logger.SetDefault(log)

	name := os.Getenv("LAMBDA_HANDLER")
	start, ok := starters[name]
	if !ok {
		log.Error("Unknown palcheck Lambda handler", slog.String("handler", name), slog.String("valid", handlerNames()))
		fmt.Fprintf(os.Stderr, "Error: LAMBDA_HANDLER must be one of: %s (got %q)\n", handlerNames(), name)
		os.Exit(1)
	}

	log.Info("Starting palcheck Lambda handler", slog.String("handler", name))
	if err := start(); err != nil {
		log.Error("Failed to initialize palcheck Lambda handler", slog.String("handler", name), slog.String("error", err.Error()))
		os.Exit(1)
	}
}
