package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	root, err := os.MkdirTemp("", "nlterm-cli-root")
	if err != nil {
		t.Fatalf("Failed to create temp root: %v", err)
	}
	configDir, err := os.MkdirTemp("", "nlterm-cli-config")
	if err != nil {
		t.Fatalf("Failed to create temp config dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(root)
		os.RemoveAll(configDir)
	})

	cfg := DefaultConfig(root, configDir)
	cfg.DisableColor = true

	cli, err := NewCLI(cfg)
	if err != nil {
		t.Fatalf("Failed to create CLI: %v", err)
	}
	t.Cleanup(cli.Close)
	return cli, cli.jail.Root()
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"ls", []string{"ls"}},
		{"ls -a /tmp", []string{"ls", "-a", "/tmp"}},
		{"  mkdir   test  ", []string{"mkdir", "test"}},
		{`mkdir "my folder"`, []string{"mkdir", "my folder"}},
		{`echo 'hello world' done`, []string{"echo", "hello world", "done"}},
		{`touch ""`, []string{"touch", ""}},
		{"", nil},
		{"   ", nil},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := tokenize(tc.input)
			if err != nil {
				t.Fatalf("tokenize(%q) failed: %v", tc.input, err)
			}
			if len(got) != len(tc.want) || (len(got) > 0 && !reflect.DeepEqual(got, tc.want)) {
				t.Errorf("tokenize(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	for _, input := range []string{`mkdir "unclosed`, `cat 'half`} {
		if _, err := tokenize(input); err == nil {
			t.Errorf("tokenize(%q) succeeded, want parse error", input)
		}
	}
}

func TestDispatchMkdirAndLs(t *testing.T) {
	cli, root := newTestCLI(t)

	out := cli.Dispatch("mkdir testdir")
	if !strings.Contains(out, "created successfully") {
		t.Fatalf("mkdir output = %q", out)
	}
	if info, err := os.Stat(filepath.Join(root, "testdir")); err != nil || !info.IsDir() {
		t.Fatalf("testdir not created: %v", err)
	}

	out = cli.Dispatch("ls")
	if !strings.Contains(out, "testdir") {
		t.Errorf("ls output %q does not list testdir", out)
	}
}

func TestDispatchLsEmptyDirectory(t *testing.T) {
	cli, _ := newTestCLI(t)

	if out := cli.Dispatch("ls"); out != "Directory is empty." {
		t.Errorf("ls output = %q", out)
	}
}

func TestDispatchRmDirectoryRequiresRecursive(t *testing.T) {
	cli, root := newTestCLI(t)

	dir := filepath.Join(root, "full")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	out := cli.Dispatch("rm full")
	if !strings.Contains(out, "use -r for recursive removal") {
		t.Errorf("rm output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.txt")); err != nil {
		t.Error("rm without -r removed directory contents")
	}

	out = cli.Dispatch("rm -r full")
	if !strings.Contains(out, "deleted successfully") {
		t.Errorf("rm -r output = %q", out)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("rm -r left directory behind")
	}
}

func TestDispatchTouchAndCat(t *testing.T) {
	cli, root := newTestCLI(t)

	cli.Dispatch("touch notes.txt")
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("line one\nline two\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	out := cli.Dispatch("cat notes.txt")
	if !strings.Contains(out, "line one") || !strings.Contains(out, "line two") {
		t.Errorf("cat output = %q", out)
	}

	out = cli.Dispatch("cat -n notes.txt")
	if !strings.Contains(out, "1: line one") {
		t.Errorf("cat -n output = %q", out)
	}
}

func TestDispatchCdAndPwd(t *testing.T) {
	cli, root := newTestCLI(t)

	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	out := cli.Dispatch("cd sub")
	if !strings.Contains(out, "Changed directory") {
		t.Errorf("cd output = %q", out)
	}
	if got := cli.Dispatch("pwd"); got != filepath.Join(root, "sub") {
		t.Errorf("pwd = %q, want %q", got, filepath.Join(root, "sub"))
	}

	// cd with no argument returns to the jail root.
	cli.Dispatch("cd")
	if got := cli.Dispatch("pwd"); got != root {
		t.Errorf("pwd after bare cd = %q, want root", got)
	}
}

func TestDispatchCdMissingDirectory(t *testing.T) {
	cli, _ := newTestCLI(t)

	out := cli.Dispatch("cd missing")
	if !strings.Contains(out, "not found") {
		t.Errorf("cd missing output = %q", out)
	}
	if strings.Contains(out, "Security violation") {
		t.Error("Missing in-jail path must not read as a security violation")
	}
}

func TestDispatchBlocksTraversal(t *testing.T) {
	cli, _ := newTestCLI(t)

	for _, line := range []string{"cat ../secret", "cd ..", "ls /etc", "rm ../../x"} {
		t.Run(line, func(t *testing.T) {
			out := cli.Dispatch(line)
			if !strings.Contains(out, "Security violation") {
				t.Errorf("Dispatch(%q) = %q, want security violation", line, out)
			}
		})
	}
}

func TestDispatchNaturalLanguage(t *testing.T) {
	cli, root := newTestCLI(t)

	out := cli.Dispatch("create folder demo")
	if !strings.Contains(out, "interpreted as: mkdir demo") {
		t.Errorf("Natural dispatch output = %q", out)
	}
	if info, err := os.Stat(filepath.Join(root, "demo")); err != nil || !info.IsDir() {
		t.Errorf("Natural dispatch did not create directory: %v", err)
	}

	out = cli.Dispatch("where am i")
	if !strings.Contains(out, "interpreted as: pwd") || !strings.Contains(out, root) {
		t.Errorf("Natural pwd output = %q", out)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	cli, _ := newTestCLI(t)

	out := cli.Dispatch("zzzqqq")
	if !strings.Contains(out, "Command 'zzzqqq' not found") {
		t.Errorf("Unknown command output = %q", out)
	}
}

func TestDispatchSuggestsForTypo(t *testing.T) {
	cli, _ := newTestCLI(t)

	out := cli.Dispatch("mkdri newdir")
	if !strings.Contains(out, "not found") {
		t.Fatalf("Typo output = %q", out)
	}
	if !strings.Contains(out, "mkdir") {
		t.Errorf("Typo output %q lacks mkdir suggestion", out)
	}
}

func TestDispatchExit(t *testing.T) {
	cli, _ := newTestCLI(t)

	out := cli.Dispatch("exit")
	if out != "Goodbye!" {
		t.Errorf("exit output = %q", out)
	}
	if cli.running {
		t.Error("exit did not clear the running flag")
	}

	cli.running = true
	cli.Dispatch("quit")
	if cli.running {
		t.Error("quit did not clear the running flag")
	}
}

func TestDispatchIsCaseInsensitiveOnCommandName(t *testing.T) {
	cli, _ := newTestCLI(t)

	out := cli.Dispatch("MKDIR upper")
	if !strings.Contains(out, "created successfully") {
		t.Errorf("MKDIR output = %q", out)
	}
}

func TestDispatchSurvivesPanickingHandler(t *testing.T) {
	cli, _ := newTestCLI(t)

	cli.registry.Register("boom", func(args []string) (string, error) {
		panic("handler exploded")
	}, "panics", "utility")

	out := cli.Dispatch("boom")
	if !strings.Contains(out, "Unexpected error") {
		t.Errorf("Panic output = %q", out)
	}
	// The loop must still dispatch afterwards.
	if out := cli.Dispatch("pwd"); out == "" {
		t.Error("Dispatcher dead after handler panic")
	}
}

func TestDispatchHistoryCommand(t *testing.T) {
	cli, _ := newTestCLI(t)

	cli.history.Add("ls")
	cli.history.Add("mkdir test")

	out := cli.Dispatch("history")
	if !strings.Contains(out, "ls") || !strings.Contains(out, "mkdir test") {
		t.Errorf("history output = %q", out)
	}
}

func TestDispatchHelp(t *testing.T) {
	cli, _ := newTestCLI(t)

	out := cli.Dispatch("help")
	for _, want := range []string{"ls", "mkdir", "cpu", "help"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output lacks %q", want)
		}
	}

	out = cli.Dispatch("help ls")
	if !strings.Contains(out, "ls") || !strings.Contains(out, "-a") {
		t.Errorf("help ls output = %q", out)
	}
}

func TestCodeMateUnconfigured(t *testing.T) {
	cli, root := newTestCLI(t)

	if err := os.WriteFile(filepath.Join(root, "main.py"), []byte("print('hi')\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	cli.codemate = NewCodeMateClient("https://example.invalid", "")
	out := cli.Dispatch("analyze main.py")
	if !strings.Contains(out, "CODEMATE_API_KEY") {
		t.Errorf("Unconfigured analyze output = %q", out)
	}
}

func TestValidateFilename(t *testing.T) {
	valid := []string{"file.txt", "my-dir", "a_b.c", "UPPER"}
	invalid := []string{"", "   ", "bad|name", "what?", "CON", "lpt1"}

	for _, name := range valid {
		if !validateFilename(name) {
			t.Errorf("validateFilename(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if validateFilename(name) {
			t.Errorf("validateFilename(%q) = true, want false", name)
		}
	}
}
