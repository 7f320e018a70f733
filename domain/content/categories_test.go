package content

import "testing"

func TestCanonicalizeCategory(t *testing.T) {
	tests := []struct {
		name      string
		contentID string
		lang      Language
		stored    string
		want      string
	}{
		{
			name:      "mvpulse family german",
			contentID: "mvpulse",
			lang:      LanguageDE,
			stored:    "Laser",
			want:      "Machine Vision Lasermodule",
		},
		{
			name:      "mvpulse variant matches by prefix",
			contentID: "mvpulse-2",
			lang:      LanguageDE,
			stored:    "Lasermodule",
			want:      "Machine Vision Lasermodule",
		},
		{
			name:      "matching is case insensitive",
			contentID: "MVPulse-Pro",
			lang:      LanguageEN,
			stored:    "",
			want:      "Machine Vision Laser Modules",
		},
		{
			name:      "machine-vision family english",
			contentID: "machine-vision-redline",
			lang:      LanguageEN,
			stored:    "Vision",
			want:      "Machine Vision Laser Modules",
		},
		{
			name:      "linemark family german",
			contentID: "linemark-basic",
			lang:      LanguageDE,
			stored:    "Laser",
			want:      "Linienlaser",
		},
		{
			name:      "unknown id passes through",
			contentID: "thermoscan-400",
			lang:      LanguageDE,
			stored:    "Thermografie",
			want:      "Thermografie",
		},
		{
			name:      "unknown id keeps empty category",
			contentID: "thermoscan-400",
			lang:      LanguageEN,
			stored:    "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalizeCategory(tt.contentID, tt.lang, tt.stored)
			if got != tt.want {
				t.Errorf("CanonicalizeCategory(%q, %s, %q) = %q, want %q",
					tt.contentID, tt.lang, tt.stored, got, tt.want)
			}

			// Applying the rule to its own output must not change it.
			again := CanonicalizeCategory(tt.contentID, tt.lang, got)
			if again != got {
				t.Errorf("second application changed %q to %q", got, again)
			}
		})
	}
}

func TestCanonicalCategoryUnmatched(t *testing.T) {
	if label, ok := CanonicalCategory("thermoscan-400", LanguageDE); ok {
		t.Errorf("CanonicalCategory returned %q for an unmatched id", label)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "de", want: LanguageDE},
		{in: "en", want: LanguageEN},
		{in: "DE", want: LanguageDE},
		{in: " en ", want: LanguageEN},
		{in: "fr", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLanguage(%q) expected error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLanguage(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
