package engine

import (
	"fmt"

	"github.com/aarzilli/golua/lua"
	"github.com/stevedonovan/luar"

	"narrate/engine/ast"
)

// ExampleConfig is a complete config file.
const ExampleConfig = `
entry_file = "stories/cave.nar"
entry_scene = "main"
story_dir = "stories"
prompt = "> "
debug = false
`

type Config struct {
	EntryFile  string
	EntryScene string
	// StoryDir is the base for relative @file paths. Empty means the
	// directory of the file holding the reference.
	StoryDir string
	Prompt   string
	Debug    bool
}

func DefaultConfig() *Config {
	return &Config{
		EntryScene: "main",
		Prompt:     "> ",
	}
}

// LoadConfig runs a Lua config file and reads its globals over the defaults.
func LoadConfig(configFile string) (*Config, error) {
	conf := DefaultConfig()
	confState := luar.Init()
	defer confState.Close()
	err := confState.DoFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("Couldn't load config [%s]: %w", configFile, err)
	}
	globals := []struct {
		name string
		dst  *string
	}{
		{"entry_file", &conf.EntryFile},
		{"entry_scene", &conf.EntryScene},
		{"story_dir", &conf.StoryDir},
		{"prompt", &conf.Prompt},
	}
	for _, g := range globals {
		if str, ok := globalString(confState, g.name); ok {
			*g.dst = str
		}
	}
	confState.GetGlobal("debug")
	if confState.IsBoolean(-1) {
		conf.Debug = confState.ToBoolean(-1)
	}
	confState.Pop(1)
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("Bad config [%s]: %w", configFile, err)
	}
	return conf, nil
}

func (conf *Config) Validate() error {
	_, err := conf.Entry()
	return err
}

// Entry is the scene a new session starts in.
func (conf *Config) Entry() (ast.SceneReference, error) {
	return ast.ParseSceneReference(conf.EntryScene)
}

func globalString(state *lua.State, name string) (string, bool) {
	state.GetGlobal(name)
	defer state.Pop(1)
	if !state.IsString(-1) {
		return "", false
	}
	return state.ToString(-1), true
}
