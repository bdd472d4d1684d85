// Command mazegen prints perfect mazes as ASCII, optionally replaying their
// generation step by step.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beka-birhanu/backtrack-maze/logger"
	"github.com/beka-birhanu/backtrack-maze/maze"
)

const (
	levelSeparator = "---"
	clearScreen    = "\033[H\033[2J"
)

type options struct {
	width   int
	height  int
	seed    *int64
	count   int
	output  string
	animate bool
	delay   time.Duration
}

func main() {
	log, err := logger.New("MAZEGEN", "", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating logger: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Error(err.Error())
		os.Exit(2)
	}

	out := io.Writer(os.Stdout)
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			log.Error(fmt.Sprintf("Creating %s: %v", opts.output, err))
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	if err := run(out, opts, time.Sleep); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}

	if opts.output != "" {
		log.Info(fmt.Sprintf("Generated %d maze(s) of %dx%d in %s", opts.count, opts.width, opts.height, opts.output))
	}
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	width := fs.Int("width", 21, "Width of the maze (even values grow by one)")
	height := fs.Int("height", 11, "Height of the maze (even values grow by one)")
	seed := fs.Int64("seed", 0, "Seed for a reproducible maze (random when unset)")
	count := fs.Int("count", 1, "Number of mazes to generate, seeds increase by one")
	output := fs.String("output", "", "Output file path (stdout when empty)")
	animate := fs.Bool("animate", false, "Replay the carving step by step")
	delay := fs.Duration("delay", 30*time.Millisecond, "Pause between replayed steps")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", *count)
	}

	opts := &options{
		width:   *width,
		height:  *height,
		count:   *count,
		output:  *output,
		animate: *animate,
		delay:   *delay,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seed = seed
		}
	})
	return opts, nil
}

func run(out io.Writer, opts *options, sleep func(time.Duration)) error {
	g := maze.NewGenerator(&maze.Options{RecordSteps: opts.animate})

	for n := 0; n < opts.count; n++ {
		var seed *int64
		if opts.seed != nil {
			s := *opts.seed + int64(n)
			seed = &s
		}

		m, err := g.Generate(opts.width, opts.height, seed)
		if err != nil {
			return err
		}

		if opts.animate {
			if err := animate(out, m, opts.delay, sleep); err != nil {
				return err
			}
			continue
		}

		if n > 0 {
			fmt.Fprintln(out, levelSeparator)
		}
		fmt.Fprintf(out, "seed: %d\n", m.Seed)
		fmt.Fprint(out, m.String())
	}
	return nil
}

// animate redraws the maze after every step that changes a cell.
func animate(out io.Writer, m *maze.Maze, delay time.Duration, sleep func(time.Duration)) error {
	steps := m.Steps()
	frame, err := maze.Replay(m.Width, m.Height, nil)
	if err != nil {
		return err
	}

	for _, s := range steps {
		if err := frame.Apply(s); err != nil {
			return err
		}
		if s.Kind == maze.StepBacktrack {
			continue
		}
		fmt.Fprint(out, clearScreen)
		for _, row := range frame.Rows() {
			fmt.Fprintln(out, row)
		}
		sleep(delay)
	}
	fmt.Fprintf(out, "seed: %d\n", m.Seed)
	return nil
}
