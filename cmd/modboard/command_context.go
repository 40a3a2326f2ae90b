package main

import (
	"sync"

	"github.com/spf13/cobra"
)

// annotationStructuredLog marks commands whose output, including fatal
// errors, is structured JSON or text logging rather than plain stdout.
const annotationStructuredLog = "modboard.structured-log"

var structuredLog = map[string]string{annotationStructuredLog: "true"}

type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var (
	commandContextMu sync.Mutex
	commandContext   commandExecutionContext
)

func setCommandExecutionContext(ctx commandExecutionContext) {
	commandContextMu.Lock()
	defer commandContextMu.Unlock()
	commandContext = ctx
}

func resetCommandExecutionContext() {
	setCommandExecutionContext(commandExecutionContext{})
}

func currentCommandExecutionContext() commandExecutionContext {
	commandContextMu.Lock()
	defer commandContextMu.Unlock()
	return commandContext
}

func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationStructuredLog] == "true" {
			return true
		}
	}
	return false
}

func recordCommandExecutionContext(cmd *cobra.Command, _ []string) {
	setCommandExecutionContext(commandExecutionContext{
		CommandPath:       cmd.CommandPath(),
		UsesStructuredLog: commandUsesStructuredLogging(cmd),
	})
}
