package main

import (
	"errors"
	"os"
	"os/signal"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/lhoffmann/netconn/pkg/netconn"
)

// recvPayloads for the "recv" CLI option: listens on the given port and
// writes each received payload to stdout until an interrupt arrives.
func recvPayloads(args []string) {
	if len(args) != 3 {
		printUsage()
	}

	manager, err := parseConfig(args[0])
	if err != nil {
		log.WithError(err).Fatal("Failed to parse config")
	}
	defer func() { _ = manager.Close() }()

	kind, err := parseTransport(args[1])
	if err != nil {
		log.WithError(err).Fatal("Failed to parse transport")
	}

	port, err := strconv.ParseUint(args[2], 10, 16)
	if err != nil {
		log.WithError(err).Fatal("Failed to parse port")
	}

	handle, err := manager.Init(kind, uint16(port), true)
	if err != nil {
		log.WithError(err).Fatal("Opening connection errored")
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	buf := make([]byte, 64*1024)
	for {
		select {
		case <-signalChan:
			log.Info("Shutting down..")
			return

		default:
			n, err := manager.Receive(handle, buf)
			if errors.Is(err, netconn.ErrNoData) {
				// No peer spoke up within the timeout window; poll again.
				continue
			} else if err != nil {
				log.WithError(err).Fatal("Receiving errored")
			}

			if _, err := os.Stdout.Write(buf[:n]); err != nil {
				log.WithError(err).Fatal("Writing to stdout errored")
			}
		}
	}
}
