package main

import (
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/lhoffmann/netconn/pkg/netconn"
)

// sendPayload for the "send" CLI option: reads stdin and sends it as one
// payload to the given peer.
func sendPayload(args []string) {
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

	peer, err := netconn.ResolveEndpoint(args[2])
	if err != nil {
		log.WithError(err).Fatal("Failed to resolve peer address")
	}

	payload, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		log.WithError(err).Fatal("Reading stdin errored")
	}

	handle, err := manager.Init(kind, 0, false)
	if err != nil {
		log.WithError(err).Fatal("Opening connection errored")
	}

	if err := manager.Connect(handle, peer); err != nil {
		log.WithError(err).Fatal("Connecting errored")
	}

	n, err := manager.Send(handle, payload)
	if err != nil {
		log.WithError(err).Fatal("Sending errored")
	}
	if n != len(payload) {
		log.WithFields(log.Fields{
			"sent": n,
			"len":  len(payload),
		}).Warn("Payload was only written partially")
	}

	log.WithFields(log.Fields{
		"peer": peer,
		"sent": n,
	}).Info("Payload was sent")
}
