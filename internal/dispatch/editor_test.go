package dispatch

import (
	"os"
	"strings"
	"testing"
)

func TestWriteCommandFile(t *testing.T) {
	path, err := WriteCommandFile("echo hi")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	defer os.Remove(path)

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "echo hi\n" {
		t.Fatalf("content = %q", b)
	}
	if !strings.Contains(path, "snipbook-cmd-") || !strings.HasSuffix(path, ".sh") {
		t.Fatalf("path = %q", path)
	}
}

func TestEditorCmd_SplitsEditorWithFlags(t *testing.T) {
	t.Setenv("VISUAL", `code --wait`)
	t.Setenv("EDITOR", "")

	cmd := EditorCmd("/tmp/x.sh")
	if len(cmd.Args) != 3 || cmd.Args[1] != "--wait" || cmd.Args[2] != "/tmp/x.sh" {
		t.Fatalf("args = %v", cmd.Args)
	}
	if !strings.HasSuffix(cmd.Args[0], "code") {
		t.Fatalf("binary = %q", cmd.Args[0])
	}
}

func TestEditorCmd_FallsBackToVi(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	cmd := EditorCmd("/tmp/x.sh")
	if !strings.HasSuffix(cmd.Args[0], "vi") {
		t.Fatalf("binary = %q", cmd.Args[0])
	}
}

func TestSplitShellWords(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`vim`, []string{"vim"}},
		{`code --wait`, []string{"code", "--wait"}},
		{`"my editor" -f`, []string{"my editor", "-f"}},
		{`'single quoted' x`, []string{"single quoted", "x"}},
		{`esc\ aped`, []string{"esc aped"}},
		{``, nil},
	}
	for _, c := range cases {
		got := splitShellWords(c.in)
		if len(got) != len(c.want) {
			t.Errorf("split(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("split(%q)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}
