package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, dir string, stdin string, cliArgs ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--dir", dir}, cliArgs...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, dir string, cliArgs ...string) map[string]any {
	t.Helper()
	out, errOut, err := runCLI(t, dir, "", cliArgs...)
	if err != nil {
		t.Fatalf("%v failed: %v (stderr: %s)", cliArgs, err, errOut)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("%v: bad JSON %q: %v", cliArgs, out, err)
	}
	return payload
}

func dataOf(t *testing.T, payload map[string]any) any {
	t.Helper()
	d, ok := payload["data"]
	if !ok {
		t.Fatalf("no data envelope: %v", payload)
	}
	return d
}

func itemID(t *testing.T, payload map[string]any) string {
	t.Helper()
	d, ok := dataOf(t, payload).(map[string]any)
	if !ok {
		t.Fatalf("data is not an object: %v", payload)
	}
	id, _ := d["id"].(string)
	if id == "" {
		t.Fatalf("no item id in %v", d)
	}
	return id
}

func TestCLI_AddListMoveDelete(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".snipbook")

	mustRun(t, dir, "init")

	foldID := itemID(t, mustRun(t, dir, "items", "add", "Git", "--kind", "folder", "--parent", "root"))
	snipID := itemID(t, mustRun(t, dir, "items", "add", "Status", "--kind", "snippet", "--command", "git status", "--parent", "root"))

	// Move the snippet into the folder; it becomes the folder's child.
	mustRun(t, dir, "items", "move", snipID, "--into", foldID)
	list := dataOf(t, mustRun(t, dir, "items", "list", "--parent", foldID)).([]any)
	if len(list) != 1 {
		t.Fatalf("folder children: %v", list)
	}

	// A folder cannot be moved into its own child.
	if _, _, err := runCLI(t, dir, "", "items", "move", foldID, "--into", snipID); err == nil {
		t.Fatalf("cycle move accepted")
	}

	// Deleting the folder promotes the snippet back to the root.
	mustRun(t, dir, "items", "delete", foldID)
	rootList := dataOf(t, mustRun(t, dir, "items", "list", "--parent", "root")).([]any)
	if len(rootList) != 1 {
		t.Fatalf("root children after delete: %v", rootList)
	}
	got := rootList[0].(map[string]any)
	if got["id"] != snipID {
		t.Fatalf("promoted child missing: %v", got)
	}
}

func TestCLI_MoveRequiresExactlyOneTarget(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".snipbook")

	a := itemID(t, mustRun(t, dir, "items", "add", "A", "--parent", "root"))
	b := itemID(t, mustRun(t, dir, "items", "add", "B", "--parent", "root"))

	if _, _, err := runCLI(t, dir, "", "items", "move", a); err == nil {
		t.Fatalf("no target accepted")
	}
	if _, _, err := runCLI(t, dir, "", "items", "move", a, "--before", b, "--after", b); err == nil {
		t.Fatalf("two targets accepted")
	}
}

func TestCLI_SearchEmitsSpanAndTarget(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".snipbook")

	tabID := itemID(t, mustRun(t, dir, "items", "add", "Work", "--kind", "tab"))
	itemID(t, mustRun(t, dir, "items", "add", "Git status", "--kind", "snippet", "--command", "git status", "--parent", tabID))

	matches := dataOf(t, mustRun(t, dir, "search", "git")).([]any)
	if len(matches) != 1 {
		t.Fatalf("matches: %v", matches)
	}
	m := matches[0].(map[string]any)
	span := m["span"].(map[string]any)
	if span["start"].(float64) != 0 || span["len"].(float64) != 3 {
		t.Fatalf("span: %v", span)
	}
	target := m["target"].(map[string]any)
	if target["tabId"] != tabID {
		t.Fatalf("target: %v", target)
	}
}

func TestCLI_ExecLockedAndCanceled(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".snipbook")

	snipID := itemID(t, mustRun(t, dir, "items", "add", "Tag", "--kind", "snippet",
		"--command", "git tag {{arg$1:Version}}", "--parent", "root"))

	mustRun(t, dir, "settings", "set", "--exec-mode", "locked")
	if _, _, err := runCLI(t, dir, "", "exec", snipID); err == nil {
		t.Fatalf("locked exec accepted")
	}

	mustRun(t, dir, "settings", "set", "--exec-mode", "terminal")

	// EOF on stdin cancels the prompt flow: exit zero, nothing dispatched,
	// nothing in the history.
	out, errOut, err := runCLI(t, dir, "", "exec", snipID)
	if err != nil {
		t.Fatalf("canceled exec errored: %v", err)
	}
	if !strings.Contains(errOut, "canceled") {
		t.Fatalf("stderr = %q", errOut)
	}
	if strings.Contains(out, "git tag") {
		t.Fatalf("canceled exec dispatched: %q", out)
	}
	hist := dataOf(t, mustRun(t, dir, "history", "list")).([]any)
	if len(hist) != 0 {
		t.Fatalf("history after cancel: %v", hist)
	}
}

func TestCLI_SettingsRoundTrip(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".snipbook")

	mustRun(t, dir, "settings", "set", "--exec-mode", "editor", "--history-limit", "5")
	got := dataOf(t, mustRun(t, dir, "settings", "get")).(map[string]any)
	if got["execMode"] != "editor" || got["historyLimit"].(float64) != 5 {
		t.Fatalf("settings: %v", got)
	}

	if _, _, err := runCLI(t, dir, "", "settings", "set", "--history-limit", "0"); err == nil {
		t.Fatalf("zero history limit accepted")
	}
}

func TestCLI_ExportImport(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	src := filepath.Join(t.TempDir(), ".snipbook")
	dst := filepath.Join(t.TempDir(), ".snipbook")

	itemID(t, mustRun(t, src, "items", "add", "One", "--parent", "root"))
	out, _, err := runCLI(t, src, "", "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	file := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(file, []byte(out), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	mustRun(t, dst, "import", file)

	list := dataOf(t, mustRun(t, dst, "items", "list", "--parent", "root")).([]any)
	if len(list) != 1 || list[0].(map[string]any)["name"] != "One" {
		t.Fatalf("imported items: %v", list)
	}
}

func TestCLI_Docs(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".snipbook")

	topics := dataOf(t, mustRun(t, dir, "docs")).(map[string]any)["topics"].([]any)
	found := false
	for _, tp := range topics {
		if tp == "placeholders" {
			found = true
		}
	}
	if !found {
		t.Fatalf("topics: %v", topics)
	}

	raw, _, err := runCLI(t, dir, "", "docs", "placeholders", "--raw")
	if err != nil {
		t.Fatalf("docs raw: %v", err)
	}
	if !strings.Contains(raw, "arg$") {
		t.Fatalf("raw docs: %q", raw)
	}

	if _, _, err := runCLI(t, dir, "", "docs", "no-such-topic"); err == nil {
		t.Fatalf("unknown topic accepted")
	}
}

func TestCLI_YAMLOutput(t *testing.T) {
	t.Setenv("SNIPBOOK_CONFIG_DIR", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".snipbook")

	itemID(t, mustRun(t, dir, "items", "add", "One", "--parent", "root"))
	out, _, err := runCLI(t, dir, "", "items", "list", "--parent", "root", "--format", "yaml")
	if err != nil {
		t.Fatalf("yaml list: %v", err)
	}
	if !strings.Contains(out, "name: One") {
		t.Fatalf("yaml output: %q", out)
	}

	if _, _, err := runCLI(t, dir, "", "items", "list", "--format", "xml"); err == nil {
		t.Fatalf("unknown format accepted")
	}
}
