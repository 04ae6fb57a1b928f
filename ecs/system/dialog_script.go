package system

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/npcstack/prefabs"
)

// DialogScripts renders greeting lines from tengo scripts. A script sees the
// speaker as the global `name` and leaves its line in `text`.
type DialogScripts struct {
	mu    sync.Mutex
	cache map[string]*tengo.Compiled
}

func NewDialogScripts() *DialogScripts {
	return &DialogScripts{cache: make(map[string]*tengo.Compiled)}
}

// Render runs script for name. An empty script yields the plain greeting.
func (d *DialogScripts) Render(script, name string) (string, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return Greeting(name), nil
	}

	compiled, err := d.compiled(script)
	if err != nil {
		return "", err
	}

	run := compiled.Clone()
	if err := run.Set("name", name); err != nil {
		return "", fmt.Errorf("dialog script %s: %w", script, err)
	}
	if err := run.Run(); err != nil {
		return "", fmt.Errorf("dialog script %s: %w", script, err)
	}
	if !run.IsDefined("text") {
		return "", fmt.Errorf("dialog script %s: text is not set", script)
	}
	return run.Get("text").String(), nil
}

// Invalidate drops a cached script so the next Render recompiles it. An
// empty name drops every script.
func (d *DialogScripts) Invalidate(script string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if script == "" {
		clear(d.cache)
		return
	}
	delete(d.cache, strings.TrimPrefix(script, "scripts/"))
}

func (d *DialogScripts) compiled(script string) (*tengo.Compiled, error) {
	key := strings.TrimPrefix(script, "scripts/")

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cache == nil {
		d.cache = make(map[string]*tengo.Compiled)
	}
	if c, ok := d.cache[key]; ok {
		return c, nil
	}

	src, err := prefabs.LoadScript(key)
	if err != nil {
		return nil, fmt.Errorf("dialog script %s: %w", key, err)
	}
	s := tengo.NewScript(src)
	_ = s.Add("name", "")
	s.SetImports(stdlib.GetModuleMap("fmt", "text"))

	c, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("dialog script %s: %w", key, err)
	}
	d.cache[key] = c
	return c, nil
}

// Greeting is the line a character says when no script is available.
func Greeting(name string) string {
	return fmt.Sprintf("I'm %s", name)
}
