// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/ioutil"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/fsnotify/fsnotify"

	"github.com/lhoffmann/netconn/pkg/netconn"
)

// serveDirectory for the "serve-dir" CLI option: watches a directory and
// sends every new file's contents as one payload to the given peer.
func serveDirectory(args []string) {
	if len(args) != 4 {
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

	directory := args[3]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).Fatal("Starting file watcher errored")
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(directory); err != nil {
		log.WithError(err).Fatal("Adding directory to file watcher errored")
	}

	handle, err := manager.Init(kind, 0, false)
	if err != nil {
		log.WithError(err).Fatal("Opening connection errored")
	}
	if err := manager.Connect(handle, peer); err != nil {
		log.WithError(err).Fatal("Connecting errored")
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	log.WithFields(log.Fields{
		"directory": directory,
		"peer":      peer,
	}).Info("Serving directory")

	for {
		select {
		case <-signalChan:
			log.Info("Shutting down..")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			payload, err := ioutil.ReadFile(event.Name)
			if err != nil {
				log.WithField("file", event.Name).WithError(err).Warn("Reading file errored")
				continue
			}
			if len(payload) == 0 {
				continue
			}

			if n, err := manager.Send(handle, payload); err != nil {
				log.WithField("file", event.Name).WithError(err).Warn("Sending file errored")
			} else {
				log.WithFields(log.Fields{
					"file": event.Name,
					"sent": n,
				}).Info("File was sent")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("File watcher errored")
		}
	}
}
