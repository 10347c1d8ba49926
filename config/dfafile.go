package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/carpfsm/internal/automaton"
	"github.com/dekarrin/carpfsm/internal/fsmutil"
)

// DFATransition is one `[[transition]]` table of a DFA description file.
type DFATransition struct {
	From  string `toml:"from"`
	Input string `toml:"input"`
	To    string `toml:"to"`
}

// DFAFile is the parsed contents of a DFA description file: a plain
// transition table with no per-state payload.
type DFAFile struct {
	Start       string          `toml:"start"`
	States      []string        `toml:"states"`
	Accepting   []string        `toml:"accepting"`
	Transitions []DFATransition `toml:"transition"`
}

// LoadDFAFile reads and parses the TOML DFA description at path into out.
func LoadDFAFile(path string, out *DFAFile) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read DFA file: %w", err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse DFA file: %w", err)
	}
	return nil
}

// Build converts d into a DFA[struct{}], adding every named state before
// any transition is added so that declaration order in the file doesn't
// matter.
func (d DFAFile) Build() automaton.DFA[struct{}] {
	var dfa automaton.DFA[struct{}]
	accepting := fsmutil.StringSetOf(d.Accepting)
	for _, s := range d.States {
		dfa.AddState(s, accepting.Has(s))
	}
	dfa.Start = d.Start
	for _, t := range d.Transitions {
		dfa.AddTransition(t.From, t.Input, t.To)
	}
	return dfa
}
