package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"narrate/engine"
	"narrate/engine/lexer"
)

type options struct {
	entry      string
	configFile string
	debug      bool
	dump       bool
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "narrate [file]",
		Short:         "Interpreter for the Narrate interactive fiction language",
		Long:          "Interpreter for the Narrate interactive fiction language.\n\nA config file is a Lua script, for example:\n" + engine.ExampleConfig,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStory(args, opts)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.entry, "entry", "e", "", `Scoped scene id to start in (default "main")`)
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to a Lua config file")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	tokensCmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a story file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTokens(args[0])
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse a story file and resolve every select target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkStory(args, opts)
		},
	}
	checkCmd.Flags().BoolVar(&opts.dump, "dump", false, "Print the parsed tree")

	rootCmd.AddCommand(tokensCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		var fileErr *engine.FileError
		if errors.As(err, &fileErr) {
			fmt.Fprint(os.Stderr, fileErr.Report())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with the command line.
func loadConfig(args []string, opts *options) (*engine.Config, error) {
	conf := engine.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := engine.LoadConfig(opts.configFile)
		if err != nil {
			return nil, err
		}
		conf = loaded
	}
	if opts.entry != "" {
		conf.EntryScene = opts.entry
	}
	if opts.debug {
		conf.Debug = true
	}
	if len(args) == 1 {
		conf.EntryFile = args[0]
	}
	if conf.EntryFile == "" {
		return nil, errors.New("no story file given")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func newEngine(conf *engine.Config) *engine.Engine {
	console := engine.NewConsole(os.Stdin, os.Stdout)
	logger := engine.NewLogger(os.Stderr, conf.Debug)
	return engine.NewEngine(conf, console, console, engine.WithLogger(logger))
}

func runStory(args []string, opts *options) error {
	conf, err := loadConfig(args, opts)
	if err != nil {
		return err
	}
	entry, err := conf.Entry()
	if err != nil {
		return err
	}
	eng := newEngine(conf)
	if err := eng.Start(conf.EntryFile, entry); err != nil {
		return err
	}
	err = eng.Run()
	if errors.Is(err, engine.ErrInputClosed) {
		return nil
	}
	return err
}

func printTokens(filename string) error {
	src, err := engine.FileLoader.Load(filename)
	if err != nil {
		return err
	}
	lex := lexer.New(string(src))
	for {
		tok, err := lex.Next()
		if err != nil {
			return &engine.FileError{Filename: filename, Source: string(src), Err: err}
		}
		fmt.Printf("%-5d %s\n", tok.Line, tok)
		if tok.Kind == lexer.Eof {
			return nil
		}
	}
}

func checkStory(args []string, opts *options) error {
	conf, err := loadConfig(args, opts)
	if err != nil {
		return err
	}
	entry, err := conf.Entry()
	if err != nil {
		return err
	}
	eng := newEngine(conf)
	file, err := eng.LoadFile(conf.EntryFile)
	if err != nil {
		return err
	}
	if opts.dump {
		fmt.Println(file)
	}
	problems, err := eng.Check(conf.EntryFile)
	if err != nil {
		return err
	}
	if _, ok := file.Scene(entry); !ok {
		problems = append(problems, fmt.Errorf("entry scene: %w", &engine.FileError{Filename: conf.EntryFile, Err: &engine.ResolutionError{ScopedID: entry.String()}}))
	}
	for _, problem := range problems {
		fmt.Fprintln(os.Stderr, problem)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}
	fmt.Printf("%s: %d scene(s) OK\n", conf.EntryFile, len(file.SceneIDs()))
	return nil
}
