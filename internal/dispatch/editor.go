package dispatch

import (
	"os"
	"os/exec"
	"strings"
	"unicode"
)

func editorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// WriteCommandFile puts the resolved command into a temp file for the
// editor sink. The caller removes it when the editor returns.
func WriteCommandFile(resolved string) (string, error) {
	f, err := os.CreateTemp("", "snipbook-cmd-*.sh")
	if err != nil {
		return "", err
	}
	path := f.Name()
	if _, err := f.WriteString(resolved + "\n"); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// EditorCmd builds the $VISUAL/$EDITOR invocation for path. The TUI
// runs it through tea.ExecProcess; the CLI runs it directly.
func EditorCmd(path string) *exec.Cmd {
	words := splitShellWords(editorName())
	if len(words) == 0 {
		words = []string{"vi"}
	}
	return exec.Command(words[0], append(words[1:], path)...)
}

func openInEditor(resolved string) error {
	path, err := WriteCommandFile(resolved)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(path) }()

	cmd := EditorCmd(path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func splitShellWords(s string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}

	for _, r := range []rune(s) {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}

		if r == '\\' && !inSingle {
			escaped = true
			continue
		}

		if r == '\'' && !inDouble {
			inSingle = !inSingle
			continue
		}

		if r == '"' && !inSingle {
			inDouble = !inDouble
			continue
		}

		if !inSingle && !inDouble && unicode.IsSpace(r) {
			flush()
			continue
		}

		cur = append(cur, r)
	}

	flush()
	return out
}
