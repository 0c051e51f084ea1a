package dexfile

import "testing"

func TestDecodeDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"V", "void"},
		{"I", "int"},
		{"Z", "boolean"},
		{"J", "long"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"Lcom/example/app/MainActivity;", "com.example.app.MainActivity"},
		{"[I", "int[]"},
		{"[[B", "byte[][]"},
		{"[Ljava/lang/Object;", "java.lang.Object[]"},
		{"", Unknown},
		{"Q", "Q"}, // not a descriptor, passed through
	}
	for _, tt := range tests {
		if got := DecodeDescriptor(tt.in); got != tt.want {
			t.Errorf("DecodeDescriptor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
