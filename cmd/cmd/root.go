package cmd

import (
	"blogsmith/cmd/handlers"
)

// Execute runs the CLI. The command tree lives in the handlers package.
func Execute() {
	handlers.Execute()
}
