package language

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "Go"},
		{"src/app.py", "Python"},
		{"web/index.HTML", "HTML"},
		{"component.tsx", "TypeScript"},
		{"schema.d.ts", "TypeScript"},
		{"styles/site.scss", "CSS"},
		{"Dockerfile", "Dockerfile"},
		{"dockerfile", "Dockerfile"},
		{"build/Makefile", "Makefile"},
		{"MAKEFILE", "Makefile"},
		{"GNUmakefile", "Makefile"},
		{"deploy.sh", "Shell"},
		{"App.vue", "Vue"},
		{"readme.md", "Plaintext"},
		{"LICENSE", "Plaintext"},
		{"noext", "Plaintext"},
	}
	for _, tt := range tests {
		if got := Detect(tt.path); got.Name != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.path, got.Name, tt.want)
		}
	}
}

func TestDetectNeverNil(t *testing.T) {
	for _, path := range []string{"", ".", "..", "a.b.c.d.weird"} {
		if Detect(path) == nil {
			t.Errorf("Detect(%q) returned nil", path)
		}
	}
}

func TestPlaintextHasNoBlockState(t *testing.T) {
	if Plaintext.HasBlockState() {
		t.Error("plaintext must not carry block state")
	}
	if len(Plaintext.LineComments) != 0 {
		t.Error("plaintext must have no line comment tokens")
	}
}

func TestAllSortedAndComplete(t *testing.T) {
	all := All()
	if len(all) < 15 {
		t.Fatalf("expected at least 15 languages, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Errorf("languages not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
	for _, d := range all {
		if len(d.Extensions) == 0 {
			t.Errorf("language %q has no extensions", d.Name)
		}
	}
}
