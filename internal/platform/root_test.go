package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// /tmp/
	//   repo/ (.quicknotes)
	//     subdir/
	//       nested/
	//   empty/
	//   decoy/ (.quicknotes is a file)

	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "repo")
	subDir := filepath.Join(repoDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")
	decoyDir := filepath.Join(baseDir, "decoy")

	for _, dir := range []string{nestedDir, emptyDir, decoyDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(repoDir, StoreDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(decoyDir, StoreDir), []byte("store: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: repoDir, wantRoot: repoDir},
		{name: "Start in Subdir", startPath: subDir, wantRoot: repoDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: repoDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
		{name: "Marker Must Be A Directory", startPath: decoyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrRootNotFound) {
					t.Errorf("FindRoot() error = %v, want ErrRootNotFound", err)
				}
				return
			}
			if filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestResolveStorePath(t *testing.T) {
	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "repo")
	nestedDir := filepath.Join(repoDir, "a", "b")
	if err := os.MkdirAll(filepath.Join(repoDir, StoreDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	if got, _ := ResolveStorePath("/explicit", nestedDir); got != "/explicit" {
		t.Errorf("explicit path = %q", got)
	}

	got, err := ResolveStorePath("", nestedDir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(repoDir, StoreDir); got != want {
		t.Errorf("discovered path = %q, want %q", got, want)
	}

	emptyDir := filepath.Join(baseDir, "empty")
	if err := os.Mkdir(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}
	got, err = ResolveStorePath("", emptyDir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(emptyDir, StoreDir); got != want {
		t.Errorf("fallback path = %q, want %q", got, want)
	}
}
