package main

import (
	"Component_Tree/lib/tree"
	"Component_Tree/lib/utils"
	"flag"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"syscall"
)

var (
	port     = flag.Int("port", 52684, "Server port")
	host     = flag.String("host", "localhost", "Server host")
	logLevel = flag.String("log", "INFO", "Log level among \"PANIC\", \"FATAL\", \"ERROR\", \"WARN\", \"INFO\", \"DEBUG\", \"TRACE\"")
)

func init() {
	flag.Parse()
	log.Logger = utils.InitializeLogger(*logLevel)
}

func main() {
	treeService := new(tree.TreeService)
	treeService.Settings = tree.Settings{
		Endpoint: utils.Endpoint{
			Host: *host,
			Port: *port,
		},
	}
	treeService.Tree = tree.NewTree()

	server := utils.NewServer(treeService.Settings.Endpoint)
	if err := server.Register(treeService); err != nil {
		log.Fatal().Err(err).Msg("registering RPC treeService")
	}
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("starting RPC server")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	server.Stop()
}
