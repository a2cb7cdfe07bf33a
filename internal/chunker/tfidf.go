package chunker

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// errEmptyVocabulary means every token in the document was a stop word or
// too short to count. The caller falls back to fixed-size chunking.
var errEmptyVocabulary = errors.New("empty vocabulary after stop-word filtering")

// Tokens are runs of two or more word characters, lowercased.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// vectorizer holds a term-frequency/inverse-document-frequency model fitted
// over one whole document (all sentences of one video), so term weights are
// comparable across the document.
type vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// tokenize splits text into lowercase unigrams and bigrams with stop words
// removed. Bigrams are formed after stop-word removal.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)

	unigrams := make([]string, 0, len(raw))
	for _, tok := range raw {
		if !isStopWord(tok) {
			unigrams = append(unigrams, tok)
		}
	}

	terms := make([]string, 0, 2*len(unigrams))
	terms = append(terms, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		terms = append(terms, unigrams[i]+" "+unigrams[i+1])
	}
	return terms
}

// fitVectorizer builds the document-wide vocabulary, keeps the maxFeatures
// most frequent terms (ties broken alphabetically), and computes smoothed
// inverse document frequencies.
func fitVectorizer(texts []string, maxFeatures int) (*vectorizer, error) {
	termCount := make(map[string]int)
	docFreq := make(map[string]int)

	for _, text := range texts {
		terms := tokenize(text)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			termCount[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	if len(termCount) == 0 {
		return nil, errEmptyVocabulary
	}

	terms := make([]string, 0, len(termCount))
	for t := range termCount {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCount[terms[i]] != termCount[terms[j]] {
			return termCount[terms[i]] > termCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	v := &vectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(texts))
	for i, t := range terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	return v, nil
}

// transform maps one sentence to its l2-normalized tf-idf vector. The zero
// vector is returned when no term of the sentence is in the vocabulary.
func (v *vectorizer) transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, t := range tokenize(text) {
		if i, ok := v.vocab[t]; ok {
			vec[i] += v.idf[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// cosine computes the cosine similarity of two term vectors. Pairs with an
// undefined angle (either vector empty) score 0, which marks a topic
// boundary candidate rather than raising.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
