// Package prompt renders the knowledge context injected into the model
// prompt. Rendering is deterministic: sections are emitted in the canonical
// category order and the same category set always produces a byte-identical
// string.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/internal/knowledge"
	"github.com/Reon1917/AU-GURU/pkg/log"
)

// Preamble precedes every assembled context.
const Preamble = "Use the following verified information about Assumption University of Thailand " +
	"to answer the student's question.\n"

// Closing is appended verbatim after the knowledge sections, regardless of
// which sections were emitted.
const Closing = `
ANSWER RULES:
- Only answer questions related to Assumption University.
- If the question is not covered by the information above, say that you do not have that detail and refer the student to the Office of the University Registrar (registrar@au.edu).
- Keep answers short, factual and friendly.
- Do not invent numbers, dates or contact details.

EXAMPLES:
Q: How can I contact the university?
A: You can call +66 2 300 4543 or write to info@au.edu. For admissions, contact admissions@au.edu.
Q: What is the weather like in Bangkok?
A: I can only help with questions about Assumption University. For admissions, programs, tuition or contacts, just ask!
`

// Fallback literal used when a loaded record carries an empty field.
const fallbackUnavailable = "not available, please check https://www.au.edu"

type Assembler struct {
	kb *knowledge.Base
}

func New(kb *knowledge.Base) *Assembler {
	return &Assembler{kb: kb}
}

// Build renders the context for a category set. A category whose record is
// missing is skipped; a section that fails to render is logged and omitted,
// never propagated. The closing block is always present.
func (a *Assembler) Build(ctx context.Context, categories []core.Category) core.Bundle {
	include := make(map[core.Category]bool, len(categories))
	for _, c := range categories {
		include[c] = true
	}

	var sb strings.Builder
	sb.WriteString(Preamble)

	var contributed []core.Category
	for _, cat := range core.CategoryOrder {
		if !include[cat] || !a.kb.Has(cat) {
			continue
		}
		section, err := a.renderSection(cat)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("category", string(cat)).Msg("section render failed, omitting")
			continue
		}
		sb.WriteString(section)
		contributed = append(contributed, cat)
	}

	sb.WriteString(Closing)
	rendered := sb.String()

	return core.Bundle{
		Prompt:        rendered,
		Categories:    contributed,
		TokenEstimate: EstimateTokens(rendered),
	}
}

// EstimateTokens is the coarse, non-authoritative estimate: ceil(chars/4).
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

func (a *Assembler) renderSection(cat core.Category) (string, error) {
	switch cat {
	case core.CategoryContacts:
		return renderContacts(a.kb.Contacts), nil
	case core.CategoryFaculties:
		return renderFaculties(a.kb.Faculties), nil
	case core.CategoryHistory:
		return renderHistory(a.kb.History), nil
	case core.CategoryTuitions:
		return renderTuitions(a.kb.Tuitions), nil
	}
	return "", fmt.Errorf("unknown category %q", cat)
}

func renderContacts(c *knowledge.Contacts) string {
	var sb strings.Builder
	sb.WriteString("\nCONTACT INFORMATION:\n")
	sb.WriteString("- Phone: " + orFallback(c.Phone) + "\n")
	sb.WriteString("- Admissions phone: " + orFallback(c.AdmissionsPhone) + "\n")
	sb.WriteString("- Email: " + orFallback(c.Email) + "\n")
	sb.WriteString("- Admissions email: " + orFallback(c.AdmissionsEmail) + "\n")
	sb.WriteString("- Website: " + orFallback(c.Website) + "\n")
	sb.WriteString("- Address: " + orFallback(c.Address) + "\n")
	sb.WriteString("- Office hours: " + orFallback(c.OfficeHours) + "\n")
	return sb.String()
}

func renderFaculties(f *knowledge.Faculties) string {
	var sb strings.Builder
	sb.WriteString("\nACADEMIC PROGRAMS:\n")
	for _, fac := range f.Faculties {
		sb.WriteString("- " + orFallback(fac.Name))
		if len(fac.Programs) > 0 {
			sb.WriteString(": " + strings.Join(fac.Programs, ", "))
		}
		sb.WriteString("\n")
	}
	if f.Note != "" {
		sb.WriteString(f.Note + "\n")
	}
	return sb.String()
}

func renderHistory(h *knowledge.History) string {
	var sb strings.Builder
	sb.WriteString("\nUNIVERSITY HISTORY:\n")
	if h.Founded > 0 {
		sb.WriteString(fmt.Sprintf("- Founded in %d by %s\n", h.Founded, orFallback(h.FoundedBy)))
	}
	if h.Motto != "" {
		sb.WriteString("- Motto: " + h.Motto + "\n")
	}
	if h.Summary != "" {
		sb.WriteString(h.Summary + "\n")
	}
	for _, m := range h.Milestones {
		sb.WriteString(fmt.Sprintf("- %d: %s\n", m.Year, m.Event))
	}
	return sb.String()
}

func renderTuitions(t *knowledge.Tuitions) string {
	currency := t.Currency
	if currency == "" {
		currency = "THB"
	}

	var sb strings.Builder
	sb.WriteString("\nTUITION FEES:\n")
	for _, r := range t.Ranges {
		sb.WriteString(fmt.Sprintf("- %s: %s - %s %s per year\n",
			orFallback(r.Program),
			formatThousands(r.MinPerYear),
			formatThousands(r.MaxPerYear),
			currency,
		))
	}
	if t.Note != "" {
		sb.WriteString(t.Note + "\n")
	}
	return sb.String()
}

func orFallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return fallbackUnavailable
	}
	return s
}

// formatThousands renders 120000 as "120,000".
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
