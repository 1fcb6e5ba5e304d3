package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslatePortuguese(t *testing.T) {
	ctx := initLang(t, "pt-BR")

	got := T(ctx, "ParticipantNameRequired")
	if got != "Por favor, insira seu nome." {
		t.Errorf("T(ParticipantNameRequired) = %q", got)
	}

	got = T(ctx, "RankTaken")
	if got != "Esta resposta já foi utilizada neste bloco." {
		t.Errorf("T(RankTaken) = %q", got)
	}
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "ParticipantNameRequired")
	if got != "Please enter your name." {
		t.Errorf("T(ParticipantNameRequired) = %q", got)
	}

	got = T(ctx, "SessionNotFound")
	if got != "Session not found." {
		t.Errorf("T(SessionNotFound) = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "pt-BR")

	got := Td(ctx, "AssessmentIncomplete", map[string]any{"Answered": 12, "Total": 36})
	want := "Responda todos os blocos antes de finalizar o teste (12 de 36 respostas)."
	if got != want {
		t.Errorf("Td(AssessmentIncomplete) = %q, want %q", got, want)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want the key itself", got)
	}
}

func TestFallbackWithoutLocalizer(t *testing.T) {
	if err := Init("pt-BR"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// A bare context falls back to the default localizer.
	got := T(context.Background(), "SessionNotFound")
	if got != "Sessão não encontrada." {
		t.Errorf("T without localizer = %q", got)
	}
}
