package slug

import "testing"

func TestGenerate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation collapses", "Bolo de Chocolate!", "bolo-de-chocolate"},
		{"diacritics fold", "Ação", "acao"},
		{"mixed accents", "Aniversário", "aniversario"},
		{"leading and trailing junk", "  --Naked Cake-- ", "naked-cake"},
		{"runs become one hyphen", "Red   Velvet & Cream", "red-velvet-cream"},
		{"already clean", "casamento", "casamento"},
		{"digits kept", "Bolo 3 Andares", "bolo-3-andares"},
		{"empty", "", ""},
		{"only junk", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Generate(tc.in); got != tc.want {
				t.Errorf("Generate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
