package main

import (
	"fmt"
	"os"
	"strings"

	"blogapi/service"
)

// CliVersion is the released version of the blogapi binary.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to a subcommand.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
		exit(0)
	case "version":
		fmt.Printf("blogapi version %s\n", CliVersion)
		exit(0)
	case "serve", "migrate", "clean", "user", "token", "backup", "restore":
		exit(service.HandleCommand(append([]string{cmd}, os.Args[2:]...)))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	service.PrintHelp()
}
