package metadata

import "strconv"

const (
	similarityWeight = 1.2
	yearPenaltyStep  = 2.0
)

// positionalSimilarity is the index-aligned character-equality ratio of
// two strings: the count of positions where both strings carry the same
// byte, divided by the longer string's length. It is deliberately crude
// and sensitive to prefix alignment; ranking depends on its exact
// behavior, so it must not be swapped for an edit-distance metric.
func positionalSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	matches := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return float64(matches) / float64(longest)
}

// scoreCandidate computes the composite ranking score for one candidate:
// the better of the two normalized name similarities scaled to 0-100 and
// weighted, plus remote popularity, minus a penalty proportional to the
// distance between the candidate's first-air year and the guessed year.
// Missing or malformed dates contribute no penalty.
func scoreCandidate(query string, cand Candidate, yearGuess int) float64 {
	qnorm := NormalizeTitle(query)
	name := NormalizeTitle(cand.Name)
	oname := NormalizeTitle(cand.OriginalName)

	var p1, p2 float64
	if name != "" && qnorm != "" {
		p1 = positionalSimilarity(qnorm, name) * 100
	}
	if oname != "" && qnorm != "" {
		p2 = positionalSimilarity(qnorm, oname) * 100
	}

	sim := p1
	if p2 > sim {
		sim = p2
	}

	score := sim*similarityWeight + cand.Popularity

	if yearGuess > 0 && len(cand.FirstAirDate) >= 4 {
		if year, err := strconv.Atoi(cand.FirstAirDate[:4]); err == nil && year > 0 {
			diff := year - yearGuess
			if diff < 0 {
				diff = -diff
			}
			score -= float64(diff) * yearPenaltyStep
		}
	}

	return score
}

// bestCandidate selects the highest-scoring candidate. Ties keep the
// first-seen candidate, matching a stable max reduction. The second
// return is false only for an empty candidate set.
func bestCandidate(query string, candidates []Candidate, yearGuess int) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	bestScore := scoreCandidate(query, best, yearGuess)
	for _, cand := range candidates[1:] {
		if score := scoreCandidate(query, cand, yearGuess); score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best, true
}
