package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"page section", "homePage-hero", "homepage-hero"},
		{"nested section", "aboutPage-ourStory-image", "aboutpage-ourstory-image"},
		{"spaces become hyphens", "Sea View Villa", "sea-view-villa"},
		{"punctuation dropped", "BR Builders & Developers!", "br-builders-developers"},
		{"collapsed hyphens", "buy -- rent", "buy-rent"},
		{"trimmed", "  -footer-  ", "footer"},
		{"digits kept", "Tower 2026", "tower-2026"},
		{"non-latin dropped", "Café Ñandú", "caf-and"},
		{"empty", "", ""},
		{"only symbols", "@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.in); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateIsStable(t *testing.T) {
	for _, in := range []string{"Sea View Villa", "homepage-hero", "Tower 2026"} {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate(Generate(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Photo (1).JPG", "my-photo-1.jpg"},
		{"villa.png", "villa.png"},
		{"Front View.PNG", "front-view.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\\Users\\me\\hero.webp`, "hero.webp"},
		{"no-extension", "no-extension"},
		{"!!!.png", "file.png"},
		{".hidden", "file.hidden"},
		{"archive.tar.GZ", "archivetar.gz"},
		{"logo.s-v-g", "logo.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FileName(tt.in); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
