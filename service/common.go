package service

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"blogapi/app/config"
	"blogapi/app/repositories"
)

// loadConfig reads and validates the environment. Tests swap it out.
var loadConfig = func() (config.Config, error) {
	cfg := config.Load()
	return cfg, cfg.Validate()
}

var openStore = repositories.Open

// confirm asks a yes/no question on stdout and reads the answer from stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}

// mustConfig loads the configuration or prints why it cannot.
func mustConfig() (config.Config, bool) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return cfg, false
	}
	return cfg, true
}
