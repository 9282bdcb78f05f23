package i18n

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	av := GetAvailableLocales()
	for _, k := range []string{"en", "de"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present", k)
		}
	}
	if av["de"] != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", av["de"])
	}
	if got := Locales(); len(got) != 2 || got[0] != "de" || got[1] != "en" {
		t.Fatalf("unexpected locale list: %v", got)
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if got := T("error.forbidden"); got != "Wrong email or password." {
		t.Fatalf("unexpected translation: %q", got)
	}
	if got := T("cli.theme_created", 3, "History"); got != "Theme 3 created: History" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	defer SetLang("en")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("cli.theme_created", 3, "Geschichte"); got != "Thema 3 angelegt: Geschichte" {
		t.Fatalf("unexpected German translation: %q", got)
	}
}

func TestT_FallbacksAndLocaleParity(t *testing.T) {
	Init("fr")
	if got := T("cli.no_themes"); got != "No themes." {
		t.Fatalf("expected English fallback, got %q", got)
	}
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected message id back, got %q", got)
	}

	// every English message must have a German translation
	en, err := localeFS.ReadFile("locales/en.yaml")
	if err != nil {
		t.Fatalf("read en: %v", err)
	}
	de, err := localeFS.ReadFile("locales/de.yaml")
	if err != nil {
		t.Fatalf("read de: %v", err)
	}
	enKeys, deKeys := keysOf(t, en), keysOf(t, de)
	for k := range enKeys {
		if _, ok := deKeys[k]; !ok {
			t.Fatalf("missing German translation for %q", k)
		}
	}
	Init("en")
}

func keysOf(t *testing.T, data []byte) map[string]struct{} {
	t.Helper()
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal locale: %v", err)
	}
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
