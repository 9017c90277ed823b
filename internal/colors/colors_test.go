package colors

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		hex  string
		want bool
	}{
		{"red", "#ff0000", true},
		{"  CornflowerBlue ", "#6495ed", true},
		{"#0f0", "#00ff00", true},
		{"#F0D9B5", "#f0d9b5", true},
		{"#12345", "", false},
		{"rgb(1,2,3)", "", false},
		{"notacolor", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			c, ok := Parse(tc.in)
			if ok != tc.want {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.in, ok, tc.want)
			}
			if ok && Hex(c) != tc.hex {
				t.Fatalf("Parse(%q) = %s, want %s", tc.in, Hex(c), tc.hex)
			}
		})
	}
}

func TestTransparent(t *testing.T) {
	c, ok := Parse("transparent")
	if !ok {
		t.Fatal("transparent not understood")
	}
	if _, _, _, a := c.RGBA(); a != 0 {
		t.Fatalf("alpha = %d, want 0", a)
	}
}

func TestOrFallback(t *testing.T) {
	if OrFallback("bogus") != Fallback {
		t.Fatal("unknown color did not fall back")
	}
	if OrFallback("black") == Fallback {
		t.Fatal("known color fell back")
	}
}
