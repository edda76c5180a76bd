package metadata

import "testing"

func TestPositionalSimilarity(t *testing.T) {
	if got := positionalSimilarity("", "abc"); got != 0 {
		t.Fatalf("expected 0 for empty input, got %f", got)
	}
	if got := positionalSimilarity("abc", "abc"); got != 1.0 {
		t.Fatalf("expected 1.0 for identical strings, got %f", got)
	}
	// Position-indexed, not edit distance: a single shift wrecks the ratio.
	if got := positionalSimilarity("abcdef", "xabcdef"); got >= 0.5 {
		t.Fatalf("shifted string should score poorly, got %f", got)
	}
	// Ratio divides by the longer string's length.
	if got := positionalSimilarity("ab", "abcd"); got != 0.5 {
		t.Fatalf("expected 0.5, got %f", got)
	}
}

func TestScoreCandidateExactMatch(t *testing.T) {
	cand := Candidate{Name: "Breaking Bad", Popularity: 0}
	score := scoreCandidate("Breaking Bad", cand, 0)
	// similarity 100 * 1.2, no popularity, no year penalty
	if score != 120 {
		t.Fatalf("expected 120, got %f", score)
	}
}

func TestScoreCandidateUsesBetterNameField(t *testing.T) {
	cand := Candidate{Name: "Totally Different", OriginalName: "Breaking Bad"}
	if score := scoreCandidate("Breaking Bad", cand, 0); score < 120 {
		t.Fatalf("original_name match should carry the score, got %f", score)
	}
}

func TestScoreCandidateYearPenalty(t *testing.T) {
	near := Candidate{Name: "The Office", FirstAirDate: "2005-03-24", Popularity: 10}
	far := Candidate{Name: "The Office", FirstAirDate: "2019-03-24", Popularity: 10}

	nearScore := scoreCandidate("The Office", near, 2005)
	farScore := scoreCandidate("The Office", far, 2005)
	if nearScore <= farScore {
		t.Fatalf("closer year must score higher: near=%f far=%f", nearScore, farScore)
	}
	if diff := nearScore - farScore; diff != 28 {
		t.Fatalf("expected 14-year gap to cost 28 points, got %f", diff)
	}
}

func TestScoreCandidateMalformedDate(t *testing.T) {
	clean := Candidate{Name: "Dark", Popularity: 5}
	malformed := Candidate{Name: "Dark", Popularity: 5, FirstAirDate: "n/a"}
	if scoreCandidate("Dark", clean, 2017) != scoreCandidate("Dark", malformed, 2017) {
		t.Fatal("malformed date must contribute no penalty")
	}
}

func TestBestCandidate(t *testing.T) {
	if _, ok := bestCandidate("x", nil, 0); ok {
		t.Fatal("empty set must not produce a candidate")
	}

	candidates := []Candidate{
		{ID: 1, Name: "The Office", FirstAirDate: "2019-01-01", Popularity: 50},
		{ID: 2, Name: "The Office", FirstAirDate: "2005-03-24", Popularity: 80},
	}
	best, ok := bestCandidate("The Office US (2005) Dublado", candidates, 2005)
	if !ok || best.ID != 2 {
		t.Fatalf("expected candidate 2 to win, got %+v", best)
	}
}

func TestBestCandidateTieKeepsFirst(t *testing.T) {
	candidates := []Candidate{
		{ID: 7, Name: "Dark", Popularity: 10},
		{ID: 8, Name: "Dark", Popularity: 10},
	}
	best, ok := bestCandidate("Dark", candidates, 0)
	if !ok || best.ID != 7 {
		t.Fatalf("tie must keep the first-seen candidate, got %+v", best)
	}
}
