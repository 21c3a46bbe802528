package embedded

import (
	"testing"
	"testing/fstest"
)

func resetForTest(t *testing.T) {
	t.Helper()
	initialized = false
	t.Cleanup(func() { initialized = false })
}

// TestNotInitialized 测试未初始化时的错误
func TestNotInitialized(t *testing.T) {
	resetForTest(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := Open("assets/test.png"); err != errNotInitialized {
		t.Errorf("Open before Init: %v", err)
	}
	if _, err := ReadFile("data/scene.yaml"); err != errNotInitialized {
		t.Errorf("ReadFile before Init: %v", err)
	}
	if Exists("data/scene.yaml") {
		t.Error("Exists before Init should be false")
	}
}

// TestPrefixRouting 测试按前缀选择文件系统
func TestPrefixRouting(t *testing.T) {
	resetForTest(t)

	assets := fstest.MapFS{
		"assets/textures/shoji_paper.png": {Data: []byte("png")},
		"assets/textures/wood.png":        {Data: []byte("png")},
	}
	data := fstest.MapFS{
		"data/scene.yaml": {Data: []byte("defaultVariant: x")},
	}
	Init(assets, data)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"data file", "data/scene.yaml", "defaultVariant: x", false},
		{"dot prefix", "./data/scene.yaml", "defaultVariant: x", false},
		{"asset file", "assets/textures/wood.png", "png", false},
		{"wrong fs", "assets/scene.yaml", "", true},
		{"unknown prefix", "config/scene.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q): %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	matches, err := Glob("assets/textures/*.png")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob matched %v, want 2 files", matches)
	}
	if !Exists("data/scene.yaml") || Exists("data/missing.yaml") {
		t.Error("Exists mismatch")
	}
}
