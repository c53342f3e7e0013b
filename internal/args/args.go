// Package args implements the argument templating engine for smart
// snippets: extracting {{arg$<n>:<label>}} placeholders from a raw
// command string and resolving them through sequential user prompts.
package args

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The placeholder grammar is fixed for compatibility with existing
// libraries: marker, numeric 1-based id, ':', label up to the first '}'.
var placeholderRe = regexp.MustCompile(`\{\{arg\$(\d+):([^}]*)\}\}`)

type Placeholder struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Extract scans command for placeholders, de-duplicates by id (the
// first occurrence's label wins; labels are not validated for
// consistency) and sorts by id ascending. The sorted order governs
// prompt order regardless of textual occurrence order.
func Extract(command string) []Placeholder {
	matches := placeholderRe.FindAllStringSubmatch(command, -1)
	if len(matches) == 0 {
		return nil
	}

	byID := map[int]string{}
	var ids []int
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if _, seen := byID[id]; seen {
			continue
		}
		byID[id] = m[2]
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Placeholder, 0, len(ids))
	for _, id := range ids {
		out = append(out, Placeholder{ID: id, Label: byID[id]})
	}
	return out
}

// HasPlaceholders reports whether command is a "smart" snippet.
func HasPlaceholders(command string) bool {
	return placeholderRe.MatchString(command)
}

// ErrCanceled aborts a resolution. Distinct from an empty answer: an
// empty string is a legitimate value.
var ErrCanceled = errors.New("prompt canceled")

// PromptFunc collects one argument value. previous is the last value
// the user supplied for this placeholder id ("" when none is known).
// Returning ErrCanceled (or any error) aborts the whole resolution.
type PromptFunc func(ph Placeholder, previous string) (string, error)

// Resolve prompts for each placeholder strictly sequentially, in id
// order, then substitutes every occurrence of each resolved token in
// the original command. Later prompts may depend on the user having
// answered earlier ones, so prompts are never issued concurrently.
//
// Cancellation at any step aborts atomically: the error is returned,
// and callers must not dispatch or record anything. Tokens whose id
// was never resolved are left verbatim as a safe fallback. A command
// with zero placeholders resolves to itself with zero prompts.
func Resolve(ctx context.Context, command string, defaults map[int]string, prompt PromptFunc) (string, error) {
	phs := Extract(command)
	if len(phs) == 0 {
		return command, nil
	}

	values := map[int]string{}
	for _, ph := range phs {
		if err := ctx.Err(); err != nil {
			return "", ErrCanceled
		}
		v, err := prompt(ph, defaults[ph.ID])
		if err != nil {
			return "", err
		}
		values[ph.ID] = v
	}

	resolved := placeholderRe.ReplaceAllStringFunc(command, func(token string) string {
		m := placeholderRe.FindStringSubmatch(token)
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return token
		}
		v, ok := values[id]
		if !ok {
			return token
		}
		return v
	})
	return resolved, nil
}

// Describe renders a short human label for a placeholder, used by list
// views and prompts ("1: Version").
func (p Placeholder) Describe() string {
	label := strings.TrimSpace(p.Label)
	if label == "" {
		return strconv.Itoa(p.ID)
	}
	return strconv.Itoa(p.ID) + ": " + label
}
