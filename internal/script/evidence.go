// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package script

import (
	"regexp"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// evidenceTokenPattern matches [prov:<id>] citation markers (R3.1).
var evidenceTokenPattern = regexp.MustCompile(`\[prov:([A-Za-z0-9_-]+)\]`)

// ExtractEvidenceTokens scans text for citation markers and resolves each id
// against the supplied provenance list. Unresolved ids are dropped silently —
// absence of a match is not an error (R3.3, R3.4).
func ExtractEvidenceTokens(text string, provs []types.Provenance) []types.EvidenceToken {
	if len(provs) == 0 {
		return nil
	}

	byID := make(map[string]types.Provenance, len(provs))
	for _, p := range provs {
		byID[p.ID] = p
	}

	var tokens []types.EvidenceToken
	for _, m := range evidenceTokenPattern.FindAllStringSubmatchIndex(text, -1) {
		id := text[m[2]:m[3]]
		p, ok := byID[id]
		if !ok {
			continue
		}
		tokens = append(tokens, types.EvidenceToken{
			ID:     id,
			Offset: m[0],
			Label:  p.Label,
			Href:   p.Href,
		})
	}
	return tokens
}
