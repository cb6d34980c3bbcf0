package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestJavaFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main/java/app/UserService.java", "@Service class UserService {}")
	writeFile(t, root, "src/main/java/app/UserController.java", "@RestController class UserController {}")
	writeFile(t, root, "src/main/resources/application.yml", "spring:\n  application:\n    name: demo\n")
	writeFile(t, root, "target/Generated.java", "class Generated {}")
	writeFile(t, root, ".git/HEAD.java", "not really java")
	writeFile(t, root, "README.md", "# readme")

	files, err := JavaFiles(root)
	if err != nil {
		t.Fatalf("JavaFiles() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("files = %d, want 2: %+v", len(files), files)
	}

	// Lexical walk order.
	if files[0].Path != "src/main/java/app/UserController.java" {
		t.Errorf("files[0] = %q", files[0].Path)
	}
	if files[1].Path != "src/main/java/app/UserService.java" {
		t.Errorf("files[1] = %q", files[1].Path)
	}
	if files[0].Content != "@RestController class UserController {}" {
		t.Errorf("content = %q", files[0].Content)
	}
}

func TestJavaFilesWithOptions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.java", "class App {}")
	writeFile(t, root, "generated/Gen.java", "class Gen {}")
	writeFile(t, root, "src/Big.java", "class Big {} // padding padding padding")

	files, err := JavaFilesWithOptions(root, Options{
		MaxFileSize: 20,
		IgnoreDirs:  []string{"generated"},
	})
	if err != nil {
		t.Fatalf("JavaFilesWithOptions() error = %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("files = %d, want 1: %+v", len(files), files)
	}
	if files[0].Path != "src/App.java" {
		t.Errorf("files[0] = %q", files[0].Path)
	}
}

func TestJavaFilesEmptyRepo(t *testing.T) {
	files, err := JavaFiles(t.TempDir())
	if err != nil {
		t.Fatalf("JavaFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %d, want 0", len(files))
	}
}

func TestJavaFilesMissingRoot(t *testing.T) {
	if _, err := JavaFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestProbeSpringBoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main/resources/application.yml",
		"spring:\n  application:\n    name: orders\n  profiles:\n    active: prod\n")

	info := ProbeSpringBoot(root)
	if !info.IsSpringBoot {
		t.Fatal("IsSpringBoot = false")
	}
	if info.ApplicationName != "orders" {
		t.Errorf("ApplicationName = %q", info.ApplicationName)
	}
	if info.ActiveProfiles != "prod" {
		t.Errorf("ActiveProfiles = %q", info.ActiveProfiles)
	}
	if info.ConfigPath != "src/main/resources/application.yml" {
		t.Errorf("ConfigPath = %q", info.ConfigPath)
	}
}

func TestProbeSpringBootAbsent(t *testing.T) {
	if info := ProbeSpringBoot(t.TempDir()); info.IsSpringBoot {
		t.Error("IsSpringBoot = true for repo without config")
	}
}

func TestProbeSpringBootMalformedConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "application.yml", "{unclosed: [")

	info := ProbeSpringBoot(root)
	if !info.IsSpringBoot {
		t.Error("IsSpringBoot = false for present but malformed config")
	}
	if info.ApplicationName != "" {
		t.Errorf("ApplicationName = %q, want empty", info.ApplicationName)
	}
}
