package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bz888/policyask/internal/config"
	"github.com/bz888/policyask/internal/form"
)

// ask submits a single question and prints the outcome. It returns the exit
// status.
func ask(f *form.Form, question string, stdout, stderr io.Writer) int {
	ctx := context.Background()
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	f.SetQuestion(question)
	state, err := f.Submit(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", state.Error)
		return 1
	}
	fmt.Fprintln(stdout, state.Answer)
	return 0
}
