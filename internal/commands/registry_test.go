package commands

import (
	"testing"
)

func TestRegistry_AliasesAndCase(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&AddCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"add", "create", "ADD"} {
		cmd, ok := r.Find(name)
		if !ok || cmd.Name() != "add" {
			t.Errorf("expected %q to find add", name)
		}
	}

	if err := r.Register(&AddCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestRegistry_AliasCollision(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "delete" is taken by rm; nothing from the failed command is kept.
	if err := r.Register(&aliasCmd{HelpCmd{}, []string{"x", "delete"}}); err == nil {
		t.Fatal("expected alias collision")
	}
	if _, ok := r.Find("x"); ok {
		t.Error("failed registration must not leave partial entries")
	}
}

func TestDefaultRegistry_All(t *testing.T) {
	var names []string
	for _, cmd := range DefaultRegistry.All() {
		names = append(names, cmd.Name())
	}
	expected := []string{"add", "export", "help", "import", "list", "rm", "serve", "shell", "show", "update", "version"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, names)
			break
		}
	}
}

type aliasCmd struct {
	HelpCmd
	aliases []string
}

func (c *aliasCmd) Name() string      { return "alias-test" }
func (c *aliasCmd) Aliases() []string { return c.aliases }
