package tutor

import (
	"fmt"
	"strings"

	"github.com/kvistberg/mentor-platform/internal/modality"
)

// TrustedConfidenceThreshold is the confidence at which the dominant style is
// trusted enough to drive the explanation style. Below it the profile is
// provisional and all modalities are weighted equally.
const TrustedConfidenceThreshold = 40

// primaryInstructions describe how to explain content when a style dominates.
var primaryInstructions = map[modality.Modality]string{
	modality.Visual:      "Explain concepts using diagrams, charts, spatial metaphors and vivid imagery. Describe what things look like and how they are arranged before going into abstractions.",
	modality.Logical:     "Explain concepts through step-by-step reasoning, cause-and-effect chains and formal structure. Derive conclusions from premises and make each inference explicit.",
	modality.Verbal:      "Explain concepts through rich narration, analogies, mnemonics and precise terminology. Favor well-chosen words over symbols and restate key points in different phrasings.",
	modality.Kinesthetic: "Explain concepts through concrete hands-on examples, exercises and real-world applications the learner can try. Anchor every idea in something the learner can do.",
	modality.Conceptual:  "Explain concepts by starting from the big picture: underlying principles, how ideas connect and why they matter, before descending into details.",
}

// supportingInstructions reinforce a secondary style without displacing the
// dominant one.
var supportingInstructions = map[modality.Modality]string{
	modality.Visual:      "Where it helps, supplement with a diagram or visual description.",
	modality.Logical:     "Where it helps, supplement with a short step-by-step derivation.",
	modality.Verbal:      "Where it helps, supplement with an analogy or a verbal summary.",
	modality.Kinesthetic: "Where it helps, supplement with a small exercise the learner can try.",
	modality.Conceptual:  "Where it helps, supplement with the bigger picture behind the detail.",
}

// closingDirective is appended in every state.
const closingDirective = `Always honor an explicit request for a different explanation format immediately. After explaining, offer to present the material in an alternate format. If the learner indicates they do not understand, switch to a different modality. Never sacrifice the completeness or correctness of the educational content for stylistic fit.`

const balancedInstruction = `No learning style profile is available for this learner yet. Use a balanced mix of visual, logical, verbal, kinesthetic and conceptual explanations, weighting all five equally and without emphasizing any single style.`

// ComposeDirective renders the active profile into the personalization
// directive placed ahead of user content in the tutoring prompt. A nil
// profile is valid and produces the generic balanced instruction. The
// optional subject selects a per-subject adjustment when the profile holds
// a sub-profile for it.
func ComposeDirective(p *modality.Profile, subject string) string {
	var b strings.Builder

	switch {
	case p == nil:
		b.WriteString(balancedInstruction)

	case p.Confidence < TrustedConfidenceThreshold:
		b.WriteString("The learner's style profile is still provisional (confidence ")
		b.WriteString(fmt.Sprintf("%d/100, based on %d interactions).\n\n", p.Confidence, p.TotalInteractions))
		writeBreakdown(&b, p.Scores)
		b.WriteString("\nBecause confidence is low, do not commit to the tentative dominant style. Weight all five modalities roughly equally until more evidence accumulates.")

	default:
		b.WriteString(fmt.Sprintf("The learner's style profile (confidence %d/100, based on %d interactions):\n\n", p.Confidence, p.TotalInteractions))
		writeBreakdown(&b, p.Scores)

		if p.DominantStyle == modality.Balanced {
			b.WriteString("\nNo single style dominates. Use a balanced mix of all five modalities.")
		} else if instr, ok := primaryInstructions[modality.Modality(p.DominantStyle)]; ok {
			b.WriteString("\n")
			b.WriteString(instr)
		}

		if p.SecondaryStyle != nil && *p.SecondaryStyle != p.DominantStyle {
			if instr, ok := supportingInstructions[modality.Modality(*p.SecondaryStyle)]; ok {
				b.WriteString(" ")
				b.WriteString(instr)
			}
		}

		if subject != "" {
			if sub, ok := p.SubjectScores[subject]; ok {
				writeSubjectAdjustment(&b, subject, sub)
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(closingDirective)

	return b.String()
}

// writeBreakdown emits the numeric modality distribution, one line per
// modality in enumeration order.
func writeBreakdown(b *strings.Builder, s modality.Scores) {
	b.WriteString("Modality distribution:\n")
	for _, m := range modality.All {
		b.WriteString(fmt.Sprintf("- %s: %d%%\n", m, s.Of(m)))
	}
}

// writeSubjectAdjustment notes where the subject sub-profile leans when it
// differs from the global picture.
func writeSubjectAdjustment(b *strings.Builder, subject string, s modality.Scores) {
	top := modality.All[0]
	for _, m := range modality.All[1:] {
		if s.Of(m) > s.Of(top) {
			top = m
		}
	}

	b.WriteString(fmt.Sprintf("\nFor %s specifically, this learner leans %s (%d%% within that subject); lean that way when explaining %s topics.",
		subject, top, s.Of(top), subject))
}
