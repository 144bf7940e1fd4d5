package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps command names and aliases to their implementations.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Command)}
}

// Register adds a command under its name and every alias. It fails if
// any of those keys is already taken.
func (r *Registry) Register(c Command) error {
	keys := append([]string{c.Name()}, c.Aliases()...)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		if _, taken := r.entries[k]; taken {
			return fmt.Errorf("command name taken: %s", k)
		}
	}
	for _, k := range keys {
		r.entries[k] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.entries[name]
	return cmd, ok
}

// All returns the registered commands, deduplicated and sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := make(map[string]Command)
	for _, cmd := range r.entries {
		byName[cmd.Name()] = cmd
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	cmds := make([]Command, len(names))
	for i, name := range names {
		cmds[i] = byName[name]
	}
	return cmds
}

// DefaultRegistry is the registry package-level init functions register into.
var DefaultRegistry = NewRegistry()

// Register adds a command to DefaultRegistry, panicking on collision.
// Collisions are programmer errors caught at startup.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
