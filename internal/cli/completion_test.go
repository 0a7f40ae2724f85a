package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snaker/pkg/observability"
)

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		toComplete string
		want       []string
	}{
		{"", []string{"svg", "png", "pdf", "json", "dot", "graph"}},
		{"p", []string{"png", "pdf"}},
		{"svg,", []string{"svg,png", "svg,pdf", "svg,json", "svg,dot", "svg,graph"}},
		{"svg,png,d", []string{"svg,png,dot"}},
		{"gif", nil},
	}
	for _, tt := range tests {
		t.Run(tt.toComplete, func(t *testing.T) {
			got, directive := completeFormats(nil, nil, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("completeFormats(%q) = %v, want %v", tt.toComplete, got, tt.want)
			}
			if directive&cobra.ShellCompDirectiveNoSpace == 0 {
				t.Error("format completion should not append a space")
			}
		})
	}
}

func TestDrawFlagCompletions(t *testing.T) {
	c := newTestCLI()
	tests := []struct {
		cmd     *cobra.Command
		flag    string
		prefix  string
		want    []string
		missing bool
	}{
		{c.drawCommand(), "spectrum", "r", []string{"random", "random3", "random6"}, false},
		{c.drawCommand(), "style", "", []string{"simple", "handdrawn"}, false},
		{c.watchCommand(), "spectrum", "d", []string{"dusk"}, false},
		{c.watchCommand(), "style", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name()+"/"+tt.flag, func(t *testing.T) {
			fn, ok := tt.cmd.GetFlagCompletionFunc(tt.flag)
			if ok == tt.missing {
				t.Fatalf("completion registered = %v, want %v", ok, !tt.missing)
			}
			if tt.missing {
				return
			}
			got, _ := fn(tt.cmd, nil, tt.prefix)
			if !slices.Equal(got, tt.want) {
				t.Errorf("completions for --%s %q = %v, want %v", tt.flag, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompletionScript(t *testing.T) {
	root := newTestCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	t.Cleanup(observability.Reset)
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "snaker") {
		t.Error("bash completion script should mention the command name")
	}
}
