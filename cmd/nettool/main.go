package main

import (
	"fmt"
	"os"
)

// printUsage of nettool and exit with an error code afterwards.
func printUsage() {
	_, _ = fmt.Fprintf(os.Stderr, "Usage of %s send|recv|serve-dir:\n\n", os.Args[0])

	_, _ = fmt.Fprintf(os.Stderr, "%s send config.toml udp|tcp host:port\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Reads stdin and sends it as one payload to the given peer.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s recv config.toml udp|tcp port\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Listens on the given port, waits for the first peer and writes each\n")
	_, _ = fmt.Fprintf(os.Stderr, "  received payload to stdout until interrupted.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s serve-dir config.toml udp|tcp host:port directory\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Watches the directory and sends every new file's contents as one\n")
	_, _ = fmt.Fprintf(os.Stderr, "  payload to the given peer.\n\n")

	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
	}

	switch os.Args[1] {
	case "send":
		sendPayload(os.Args[2:])

	case "recv":
		recvPayloads(os.Args[2:])

	case "serve-dir":
		serveDirectory(os.Args[2:])

	default:
		printUsage()
	}
}
