package reconcile

import (
	"sort"
	"strings"
	"unicode"
)

// TokenSetRatio scores the similarity of two names in [0,100]. Names are
// lowercased and split into tokens; the comparison is order-insensitive, so
// "Smith, J." and "J. Smith" score 100.
//
// The scoring reproduces token_set_ratio semantics: the sorted token
// intersection is compared against each full sorted token string and the best
// of the three pairings wins. The underlying string ratio is the InDel ratio
// (edit distance with substitutions counted as delete+insert), which is pure
// and stable across versions.
func TokenSetRatio(a, b string) int {
	ta := tokenize(a)
	tb := tokenize(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}

	inter, restA, restB := splitTokenSets(ta, tb)

	sortedInter := strings.Join(inter, " ")
	combinedA := strings.TrimSpace(sortedInter + " " + strings.Join(restA, " "))
	combinedB := strings.TrimSpace(sortedInter + " " + strings.Join(restB, " "))

	best := ratio(sortedInter, combinedA)
	if r := ratio(sortedInter, combinedB); r > best {
		best = r
	}
	if r := ratio(combinedA, combinedB); r > best {
		best = r
	}
	return best
}

// BestMatch returns the candidate with the highest TokenSetRatio against
// query, together with its score. Ties are broken by input order: the first
// candidate seen wins. The caller is responsible for enforcing its minimum
// acceptable score.
func BestMatch(query string, candidates []string) (string, int, error) {
	if len(candidates) == 0 {
		return "", 0, ErrNoCandidates
	}

	bestName := candidates[0]
	bestScore := TokenSetRatio(query, candidates[0])
	for _, c := range candidates[1:] {
		if s := TokenSetRatio(query, c); s > bestScore {
			bestName, bestScore = c, s
		}
	}
	return bestName, bestScore, nil
}

// tokenize lowercases s and splits it on any non-letter, non-digit rune.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// splitTokenSets returns the sorted intersection of the two token sets and
// the sorted remainders of each side.
func splitTokenSets(a, b []string) (inter, restA, restB []string) {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	for t := range setA {
		if _, ok := setB[t]; ok {
			inter = append(inter, t)
		} else {
			restA = append(restA, t)
		}
	}
	for t := range setB {
		if _, ok := setA[t]; !ok {
			restB = append(restB, t)
		}
	}

	sort.Strings(inter)
	sort.Strings(restA)
	sort.Strings(restB)
	return inter, restA, restB
}

// ratio is the normalized InDel similarity of two strings in [0,100]:
// 100*(lenA+lenB-dist)/(lenA+lenB), where dist is the edit distance with
// substitution cost 2.
func ratio(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	lensum := len(ra) + len(rb)
	dist := indelDistance(ra, rb)
	return (100*(lensum-dist) + lensum/2) / lensum
}

// indelDistance computes edit distance where a substitution costs 2 (one
// deletion plus one insertion).
func indelDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			if ins < del {
				curr[j] = ins
			} else {
				curr[j] = del
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
