package utils

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"net/rpc"
	"os"
	"strconv"
)

type Endpoint struct {
	Host string
	Port int
}

func (endpoint Endpoint) Address() string {
	return endpoint.Host + ":" + strconv.Itoa(endpoint.Port)
}

func (endpoint Endpoint) Call(serviceMethod string, args any, reply any) error {
	client, err := rpc.Dial("tcp", endpoint.Address())
	if err != nil {
		return fmt.Errorf("connecting to RPC server: %w", err)
	}
	defer client.Close()

	err = client.Call(serviceMethod, args, reply)
	if err != nil {
		return fmt.Errorf("calling %s: %w", serviceMethod, err)
	}
	return nil
}

// Remove deletes the first occurrence of value, preserving order
func Remove[T comparable](array []T, value T) []T {
	for i, other := range array {
		if other == value {
			return append(array[:i], array[i+1:]...)
		}
	}
	return array
}

func InitializeLogger(logLevelFlag string) zerolog.Logger {
	// Parse and initialize log level
	level, err := zerolog.ParseLevel(logLevelFlag)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	zerolog.SetGlobalLevel(level)

	// Setup logger
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
	logger := zerolog.New(consoleWriter).
		With().
		Timestamp()

	if level == zerolog.TraceLevel {
		logger = logger.Caller()
	}

	return logger.Logger()
}
