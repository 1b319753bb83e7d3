package analyzer

import "testing"

func TestResolveTypeScript(t *testing.T) {
	files := []string{
		"src/app.ts",
		"src/util.ts",
		"src/components/button.tsx",
		"src/lib/index.ts",
		"vendor.js",
	}
	r := newResolver(files)

	tests := []struct {
		name      string
		specifier string
		fromFile  string
		want      string
		wantOK    bool
	}{
		{"sibling module", "./util", "src/app.ts", "src/util.ts", true},
		{"explicit extension", "./util.ts", "src/app.ts", "src/util.ts", true},
		{"tsx component", "./components/button", "src/app.ts", "src/components/button.tsx", true},
		{"directory index", "./lib", "src/app.ts", "src/lib/index.ts", true},
		{"parent relative", "../app", "src/components/button.tsx", "src/app.ts", true},
		{"js file", "./vendor", "app.ts", "vendor.js", true},
		{"bare package specifier", "lodash", "src/app.ts", "", false},
		{"missing relative target", "./nope", "src/app.ts", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.resolve(tt.specifier, tt.fromFile, LangTypeScript)
			if ok != tt.wantOK {
				t.Fatalf("resolve(%q) ok = %v, want %v", tt.specifier, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.specifier, got, tt.want)
			}
		})
	}
}

func TestResolvePython(t *testing.T) {
	files := []string{
		"pkg/models.py",
		"pkg/util.py",
		"pkg/sub/handler.py",
		"pkg/sub/__init__.py",
	}
	r := newResolver(files)

	tests := []struct {
		name      string
		specifier string
		fromFile  string
		want      string
		wantOK    bool
	}{
		{"same package", ".models", "pkg/util.py", "pkg/models.py", true},
		{"one level up", "..util", "pkg/sub/handler.py", "pkg/util.py", true},
		{"package init", ".sub", "pkg/util.py", "pkg/sub/__init__.py", true},
		{"absolute dotted path", "pkg.models", "pkg/sub/handler.py", "pkg/models.py", true},
		{"stdlib module", "os", "pkg/util.py", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.resolve(tt.specifier, tt.fromFile, LangPython)
			if ok != tt.wantOK {
				t.Fatalf("resolve(%q) ok = %v, want %v", tt.specifier, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.specifier, got, tt.want)
			}
		})
	}
}

func TestResolveRust(t *testing.T) {
	files := []string{
		"src/model.rs",
		"src/service.rs",
		"src/net/mod.rs",
		"src/net/client.rs",
	}
	r := newResolver(files)

	tests := []struct {
		name      string
		specifier string
		fromFile  string
		want      string
		wantOK    bool
	}{
		{"crate path", "crate::model", "src/service.rs", "src/model.rs", true},
		{"crate path with use list", "crate::model::{Order, Line}", "src/service.rs", "src/model.rs", true},
		{"crate module dir", "crate::net", "src/service.rs", "src/net/mod.rs", true},
		{"self sibling", "self::client", "src/net/mod.rs", "src/net/client.rs", true},
		{"super from submodule", "super::model", "src/net/client.rs", "src/model.rs", true},
		{"external crate", "std::collections::HashMap", "src/service.rs", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.resolve(tt.specifier, tt.fromFile, LangRust)
			if ok != tt.wantOK {
				t.Fatalf("resolve(%q) ok = %v, want %v", tt.specifier, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.specifier, got, tt.want)
			}
		})
	}
}

func TestResolveGo(t *testing.T) {
	r := newResolver([]string{"pkg/util.go", "main.go"})

	if _, ok := r.resolve("fmt", "main.go", LangGo); ok {
		t.Error("stdlib import should stay external")
	}
	if got, ok := r.resolve("pkg/util.go", "main.go", LangGo); !ok || got != "pkg/util.go" {
		t.Errorf("verbatim path match = (%q, %v), want (pkg/util.go, true)", got, ok)
	}
}
