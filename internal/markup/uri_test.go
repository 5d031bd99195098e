package markup

import "testing"

func TestParseResourceURI(t *testing.T) {
	cases := []struct {
		in       string
		assembly string
		path     string
		ok       bool
	}{
		{"/MyAssembly;component/Foo.baml", "MyAssembly", "Foo.baml", true},
		{"pack://application:,,,/MyAssembly;component/views/Main.xaml", "MyAssembly", "views/Main.xaml", true},
		{"views/Main.baml", "", "views/Main.baml", true},
		{"pack://application:,,,/themes/generic.xaml", "", "themes/generic.xaml", true},
		{"/MyAssembly;component/Foo.png", "", "", false},
		{"not a uri", "", "", false},
	}
	for _, c := range cases {
		got, ok := ParseResourceURI(c.in)
		if ok != c.ok {
			t.Errorf("ParseResourceURI(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.Assembly != c.assembly || got.Path != c.path {
			t.Errorf("ParseResourceURI(%q) = %+v, want {%s %s}", c.in, got, c.assembly, c.path)
		}
	}
}

func TestDecodePath_Once(t *testing.T) {
	if got := DecodePath("views/main%20window.baml"); got != "views/main window.baml" {
		t.Errorf("DecodePath = %q", got)
	}
	// A path that does not decode cleanly stays as-is.
	if got := DecodePath("views/bad%zz.baml"); got != "views/bad%zz.baml" {
		t.Errorf("undecodable path must round-trip unchanged, got %q", got)
	}
}

func TestSwapExt(t *testing.T) {
	if got := SwapExt("a/b.baml"); got != "a/b.xaml" {
		t.Errorf("SwapExt = %q", got)
	}
	if got := SwapExt("a/B.XAML"); got != "a/B.baml" {
		t.Errorf("SwapExt = %q", got)
	}
	if got := SwapExt("a/b.png"); got != "a/b.png" {
		t.Errorf("non-markup path must be unchanged, got %q", got)
	}
}
