/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

const (
	aliasCandidatesPerRound = 10
	aliasMaxRounds          = 10
)

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// generateCandidateAliases produces candidate aliases. Without a pattern it
// draws readable adjective-noun-verb-adverb names; a pattern has its
// {placeholder} slots substituted from idParts. A placeholder bound to a
// list picks a random element; an unbound placeholder gets a fresh UUID.
func generateCandidateAliases(pattern string, idParts map[string]interface{}) []string {
	if pattern == "" {
		candidates := make([]string, 0, aliasCandidatesPerRound)
		for i := 0; i < aliasCandidatesPerRound; i++ {
			candidates = append(candidates, randomReadableAlias())
		}
		return candidates
	}
	placeholders := placeholderPattern.FindAllStringSubmatch(pattern, -1)
	if len(placeholders) == 0 {
		return []string{pattern}
	}

	seen := make(map[string]bool)
	var candidates []string
	for attempts := 0; len(candidates) < aliasCandidatesPerRound && attempts < aliasCandidatesPerRound*10; attempts++ {
		alias := pattern
		for _, match := range placeholders {
			placeholder := match[1]
			var value string
			switch bound := idParts[placeholder].(type) {
			case nil:
				value = uuid.NewString()
			case []interface{}:
				if len(bound) == 0 {
					value = uuid.NewString()
				} else {
					value = fmt.Sprintf("%v", bound[rand.Intn(len(bound))])
				}
			case []string:
				if len(bound) == 0 {
					value = uuid.NewString()
				} else {
					value = bound[rand.Intn(len(bound))]
				}
			default:
				value = fmt.Sprintf("%v", bound)
			}
			alias = strings.ReplaceAll(alias, "{"+placeholder+"}", value)
		}
		if !seen[alias] {
			seen[alias] = true
			candidates = append(candidates, alias)
		}
	}
	return candidates
}

func randomReadableAlias() string {
	return strings.Join([]string{
		aliasAdjectives[rand.Intn(len(aliasAdjectives))],
		aliasNouns[rand.Intn(len(aliasNouns))],
		aliasVerbs[rand.Intn(len(aliasVerbs))],
		aliasAdverbs[rand.Intn(len(aliasAdverbs))],
	}, "-")
}

// generateUniqueAlias picks an alias that is free in the workspace.
// Candidates are probed in batches against the database.
func generateUniqueAlias(ctx context.Context, sess *client.Session, workspace, pattern string, idParts map[string]interface{}) (string, error) {
	for round := 0; round < aliasMaxRounds; round++ {
		candidates := generateCandidateAliases(pattern, idParts)
		if len(candidates) == 0 {
			break
		}
		taken, err := sess.ExistingAliases(ctx, workspace, candidates)
		if err != nil {
			return "", err
		}
		for _, candidate := range candidates {
			if !taken[candidate] {
				return candidate, nil
			}
		}
	}
	return "", commonerrors.NewInternalError("could not generate a unique alias within the maximum attempts")
}
