/*
Package runner drives a traversal from a terminal or a pipe.

It sits between the engine and the outside world: after every micro-step it
hands a Frame to an IOHandler and asks it for the next Command. The text
handler is the line-mode stepper (Enter steps, r restarts, c runs to the end,
q quits); the JSON handler writes one NDJSON line per frame and reads
commands from its input.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithTitle("noCycles"),
	)
	state, err := r.Run(ctx, engine, nil)
*/
package runner
