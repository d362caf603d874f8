package insight

import (
	"strings"
)

// EvidenceLevel is a hand-authored categorical confidence label attached to
// a knowledge-base entry.
type EvidenceLevel string

const (
	EvidenceHigh   EvidenceLevel = "high"
	EvidenceMedium EvidenceLevel = "medium"
	EvidenceLow    EvidenceLevel = "low"
)

// MedicalInsight is a fixed lookup result for a recognized condition. It is
// constructed fresh per query and never stored.
type MedicalInsight struct {
	Condition     string        `json:"condition"`
	Treatments    []string      `json:"treatments"`
	Interactions  []string      `json:"interactions"`
	EvidenceLevel EvidenceLevel `json:"evidence_level"`
	Confidence    float64       `json:"confidence"`
}

// insightKnowledgeBase is the hand-coded condition table. Entries are not
// computed from data; they exist to give the insights endpoint something
// deterministic to return.
var insightKnowledgeBase = []MedicalInsight{
	{
		Condition:     "hypertension",
		Treatments:    []string{"ACE inhibitors", "beta blockers", "lifestyle modification", "diuretics"},
		Interactions:  []string{"NSAIDs reduce antihypertensive effect", "potassium supplements with ACE inhibitors"},
		EvidenceLevel: EvidenceHigh,
		Confidence:    0.92,
	},
	{
		Condition:     "diabetes",
		Treatments:    []string{"metformin", "insulin therapy", "dietary management", "SGLT2 inhibitors"},
		Interactions:  []string{"beta blockers mask hypoglycemia", "corticosteroids raise glucose"},
		EvidenceLevel: EvidenceHigh,
		Confidence:    0.9,
	},
	{
		Condition:     "asthma",
		Treatments:    []string{"inhaled corticosteroids", "short-acting beta agonists", "leukotriene modifiers"},
		Interactions:  []string{"non-selective beta blockers contraindicated"},
		EvidenceLevel: EvidenceHigh,
		Confidence:    0.88,
	},
	{
		Condition:     "migraine",
		Treatments:    []string{"triptans", "NSAIDs", "CGRP antagonists", "preventive beta blockers"},
		Interactions:  []string{"triptans with SSRIs risk serotonin syndrome"},
		EvidenceLevel: EvidenceMedium,
		Confidence:    0.78,
	},
	{
		Condition:     "pneumonia",
		Treatments:    []string{"empiric antibiotics", "supportive oxygen therapy", "antipyretics"},
		Interactions:  []string{"macrolides prolong QT interval"},
		EvidenceLevel: EvidenceHigh,
		Confidence:    0.86,
	},
	{
		Condition:     "depression",
		Treatments:    []string{"SSRIs", "cognitive behavioral therapy", "SNRIs"},
		Interactions:  []string{"MAOIs with SSRIs contraindicated", "St John's Wort reduces SSRI levels"},
		EvidenceLevel: EvidenceMedium,
		Confidence:    0.75,
	},
	{
		Condition:     "atrial fibrillation",
		Treatments:    []string{"rate control with beta blockers", "anticoagulation", "catheter ablation"},
		Interactions:  []string{"amiodarone potentiates warfarin"},
		EvidenceLevel: EvidenceHigh,
		Confidence:    0.89,
	},
	{
		Condition:     "osteoarthritis",
		Treatments:    []string{"NSAIDs", "physical therapy", "intra-articular corticosteroids"},
		Interactions:  []string{"NSAIDs with anticoagulants increase bleeding risk"},
		EvidenceLevel: EvidenceMedium,
		Confidence:    0.72,
	},
}

// LookupInsights returns the knowledge-base entries whose condition name
// appears in the query, or whose condition contains the trimmed query. The
// returned slices are copies; callers may mutate them freely.
func LookupInsights(query string) []MedicalInsight {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	matches := make([]MedicalInsight, 0)
	for _, entry := range insightKnowledgeBase {
		if strings.Contains(q, entry.Condition) || strings.Contains(entry.Condition, q) {
			matches = append(matches, copyInsight(entry))
		}
	}
	return matches
}

func copyInsight(entry MedicalInsight) MedicalInsight {
	out := entry
	out.Treatments = append([]string(nil), entry.Treatments...)
	out.Interactions = append([]string(nil), entry.Interactions...)
	return out
}
