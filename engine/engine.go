package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"narrate/engine/ast"
	"narrate/engine/parser"
)

// Engine runs a story one scene at a time, reading choices from in and
// writing narration to out.
type Engine struct {
	conf    *Config
	loader  Loader
	logger  *slog.Logger
	in      Input
	out     Output
	session *Session
}

type Option func(*Engine)

func WithLoader(loader Loader) Option {
	return func(eng *Engine) {
		eng.loader = loader
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(eng *Engine) {
		eng.logger = logger
	}
}

func NewEngine(conf *Config, in Input, out Output, opts ...Option) *Engine {
	if conf == nil {
		conf = DefaultConfig()
	}
	eng := &Engine{
		conf:   conf,
		loader: FileLoader,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		in:     in,
		out:    out,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Session is the running session, nil before Start.
func (eng *Engine) Session() *Session {
	return eng.session
}

// LoadFile reads and parses one story file. Every failure comes back as a
// *FileError naming path.
func (eng *Engine) LoadFile(path string) (*ast.File, error) {
	src, err := eng.loader.Load(path)
	if err != nil {
		return nil, &FileError{Filename: path, Err: err}
	}
	file, err := parser.ParseString(string(src))
	if err != nil {
		return nil, &FileError{Filename: path, Source: string(src), Err: err}
	}
	eng.logger.Debug("loaded file", "file", path, "scenes", len(file.Scenes), "modules", len(file.Modules))
	return file, nil
}

// Start loads filename and begins a session at entry with an empty inventory.
func (eng *Engine) Start(filename string, entry ast.SceneReference) error {
	file, err := eng.LoadFile(filename)
	if err != nil {
		return err
	}
	eng.session = &Session{
		Filename:  filename,
		File:      file,
		Position:  entry,
		Inventory: NewInventory(),
		State:     Running,
	}
	return nil
}

// Run plays scenes until the exit target is chosen or an error stops it.
func (eng *Engine) Run() error {
	if eng.session == nil {
		return errors.New("No story loaded")
	}
	for eng.session.State == Running {
		if err := eng.RunScene(); err != nil {
			return err
		}
	}
	return nil
}

// RunScene executes the current scene and follows the player's choice.
func (eng *Engine) RunScene() error {
	s := eng.session
	if s == nil {
		return errors.New("No story loaded")
	}
	if s.State != Running {
		return fmt.Errorf("Session has %s", s.State)
	}
	scene, ok := s.File.Scene(s.Position)
	if !ok {
		return &FileError{Filename: s.Filename, Err: newResolutionError(s.Position, s.File)}
	}
	eng.logger.Debug("enter scene", "file", s.Filename, "scene", s.Position.String())

	for _, directive := range scene.Directives {
		switch d := directive.(type) {
		case *ast.Flavortext:
			if err := eng.out.WriteLine(d.Text); err != nil {
				return err
			}
		case *ast.Get:
			s.Inventory.Get(d.Item)
			eng.logger.Debug("get", "item", d.Item)
		case *ast.Lose:
			removed := s.Inventory.Lose(d.Item)
			eng.logger.Debug("lose", "item", d.Item, "removed", removed)
		case *ast.Select:
			// Runs after every other directive.
		}
	}

	visible := []*ast.SelectOption{}
	for _, opt := range scene.Select().Options {
		if s.Inventory.Satisfies(opt.Condition) {
			visible = append(visible, opt)
		}
	}
	if len(visible) == 0 {
		return &FileError{Filename: s.Filename, Err: &DeadEndError{ScopedID: s.Position.String()}}
	}
	opt, err := eng.choose(visible)
	if err != nil {
		return err
	}
	eng.logger.Debug("chose option", "label", opt.Label, "target", opt.Target.String())
	return eng.follow(opt.Target)
}

// choose lists the options and prompts until the player picks one of them.
func (eng *Engine) choose(options []*ast.SelectOption) (*ast.SelectOption, error) {
	for i, opt := range options {
		if err := eng.out.WriteLine(fmt.Sprintf("[%d] %s", i+1, opt.Label)); err != nil {
			return nil, err
		}
	}
	for {
		raw, err := eng.in.ReadLine(eng.conf.Prompt)
		if err == io.EOF {
			return nil, ErrInputClosed
		}
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		n, convErr := strconv.Atoi(raw)
		if convErr == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		inputErr := &UserInputError{Raw: raw, Count: len(options)}
		eng.logger.Debug("invalid selection", "input", raw)
		if err := eng.out.WriteLine(inputErr.Error()); err != nil {
			return nil, err
		}
	}
}

func (eng *Engine) follow(target ast.Target) error {
	s := eng.session
	switch t := target.(type) {
	case ast.SceneReference:
		if t.IsExit() {
			return eng.exit()
		}
		s.Position = t
	case *ast.FileReference:
		path := eng.resolvePathFrom(s.Filename, t.Filename)
		file, err := eng.LoadFile(path)
		if err != nil {
			return err
		}
		eng.logger.Debug("changed file", "from", s.Filename, "to", path, "scene", t.Ref().String())
		s.Filename = path
		s.File = file
		s.Position = t.Ref()
	default:
		return fmt.Errorf("Unknown target [%s]", target)
	}
	return nil
}

func (eng *Engine) exit() error {
	s := eng.session
	s.State = Exited
	if err := eng.out.WriteLine("Inventory:"); err != nil {
		return err
	}
	for _, item := range s.Inventory.Items() {
		if err := eng.out.WriteLine(item); err != nil {
			return err
		}
	}
	return nil
}

// resolvePathFrom places a relative @file path under the story directory,
// or next to from, the file that references it.
func (eng *Engine) resolvePathFrom(from, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	base := eng.conf.StoryDir
	if base == "" {
		base = filepath.Dir(from)
	}
	return filepath.Join(base, name)
}
