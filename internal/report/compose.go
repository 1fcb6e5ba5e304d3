// Package report composes the narrative interpretation of a finished
// assessment: a structured document plus markdown and plain-text renders
// derived from it.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/discfacil/discfacil/internal/assessment"
	"github.com/discfacil/discfacil/internal/model"
)

// ErrReportUnavailable is returned when the ranked scores cannot support a
// report (fewer than the four profile entries).
var ErrReportUnavailable = errors.New("relatório indisponível")

// NoTraitsPlaceholder is rendered in place of an empty trait list.
const NoTraitsPlaceholder = "Nenhuma característica específica encontrada para este nível."

// Section is one titled step of the narrative.
type Section struct {
	Heading    string   `json:"heading"`
	Intro      string   `json:"intro,omitempty"`
	Traits     []string `json:"traits,omitempty"`
	ShowTraits bool     `json:"show_traits"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Bullets    []string `json:"bullets,omitempty"`
}

// Document is the structured narrative report. It is a pure value derived
// from (participant name, ranked scores, trait evidence); equal inputs
// always produce an equal document.
type Document struct {
	Title    string    `json:"title"`
	Lead     string    `json:"lead"`
	Sections []Section `json:"sections"`
}

// Compose builds the narrative document for ranked scores. The template is
// selected by the dominant profile from the narratives table; a single
// routine walks the table for every profile.
func Compose(participantName string, scores []model.Score, ev assessment.Evidence) (Document, error) {
	if len(scores) < 4 {
		return Document{}, ErrReportUnavailable
	}

	dominant := scores[0]
	secondary := scores[1]
	low := scores[2:4]

	n, ok := narratives[dominant.Profile]
	if !ok {
		return Document{}, ErrReportUnavailable
	}
	sec, ok := narratives[secondary.Profile]
	if !ok {
		return Document{}, ErrReportUnavailable
	}

	secondaryInsight := strings.ReplaceAll(n.secondaryInsight, secondaryToken, strings.ToLower(sec.details.ShortName))

	doc := Document{
		Title: "Resultado de " + participantName,
		Lead: fmt.Sprintf("Seu perfil predominante é %s (%s), com traços secundários do tipo %s (%s).",
			n.details.ShortName, dominant.Profile, sec.details.ShortName, secondary.Profile),
		Sections: []Section{
			{
				Heading:    fmt.Sprintf("1. Traços principais (%s)", n.highLabel),
				Intro:      "Você marcou “muito a ver comigo” em adjetivos como:",
				Traits:     ev.DominantHigh,
				ShowTraits: true,
				Paragraphs: []string{n.dominantInsight},
			},
			{
				Heading:    fmt.Sprintf("2. Traços secundários (moderada %s)", sec.details.ShortName),
				Intro:      "Você também se identifica moderadamente com características como:",
				Traits:     ev.SecondaryMedium,
				ShowTraits: true,
				Paragraphs: []string{secondaryInsight},
			},
			{
				Heading:    fmt.Sprintf("3. Traços baixos (%s)", n.lowLabel),
				Intro:      n.lowIntro,
				Traits:     ev.LowCombined,
				ShowTraits: true,
				Paragraphs: []string{n.lowInsight},
			},
			{
				Heading: "Síntese do seu estilo comportamental",
				Bullets: []string{
					fmt.Sprintf("Perfil predominante: %s – %s", dominant.Profile, n.details.Name),
					fmt.Sprintf("Secundário: %s – %s", secondary.Profile, sec.details.Name),
					fmt.Sprintf("Baixos: %s e %s", low[0].Profile, low[1].Profile),
				},
				Paragraphs: []string{"Descrição resumida: " + n.summary},
			},
			{
				Heading: "Possíveis pontos de atenção",
				Bullets: n.attentionPoints,
			},
		},
	}
	return doc, nil
}

// Markdown renders the document as markdown.
func (d Document) Markdown() string {
	var sb strings.Builder
	sb.WriteString("## " + d.Title + "\n\n")
	sb.WriteString(d.Lead + "\n")
	for _, s := range d.Sections {
		sb.WriteString("\n### " + s.Heading + "\n\n")
		writeSection(&sb, s, "- ", "_"+NoTraitsPlaceholder+"_")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// PlainText renders the document without markup. It carries the same
// content as Markdown: both are views over the composed document.
func (d Document) PlainText() string {
	var sb strings.Builder
	sb.WriteString(d.Title + "\n\n")
	sb.WriteString(d.Lead + "\n")
	for _, s := range d.Sections {
		sb.WriteString("\n" + s.Heading + "\n\n")
		writeSection(&sb, s, "- ", NoTraitsPlaceholder)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeSection(sb *strings.Builder, s Section, bullet, placeholder string) {
	if s.Intro != "" {
		sb.WriteString(s.Intro + "\n")
	}
	if s.ShowTraits {
		if len(s.Traits) == 0 {
			sb.WriteString(placeholder + "\n")
		} else {
			for _, t := range s.Traits {
				sb.WriteString(bullet + t + "\n")
			}
		}
	}
	for _, b := range s.Bullets {
		sb.WriteString(bullet + b + "\n")
	}
	for _, p := range s.Paragraphs {
		sb.WriteString(p + "\n")
	}
}
