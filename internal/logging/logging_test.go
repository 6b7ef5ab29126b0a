package logging

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		wantErr bool
	}{
		{"warn", "console", false},
		{"debug", "json", false},
		{"info", "", false},
		{"", "console", false},
		{"verbose", "console", true},
		{"info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			log, err := New(tt.level, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("New(%q, %q) expected error", tt.level, tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q, %q) error: %v", tt.level, tt.format, err)
			}
			if log == nil {
				t.Fatal("New returned nil logger")
			}
		})
	}
}
