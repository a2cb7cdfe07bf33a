package chunker

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stop words removed, bigrams after removal",
			text: "The cat sat on the mat",
			want: []string{"cat", "sat", "mat", "cat sat", "sat mat"},
		},
		{
			name: "lowercased",
			text: "Kubernetes Cluster",
			want: []string{"kubernetes", "cluster", "kubernetes cluster"},
		},
		{
			name: "single characters dropped",
			text: "a b c dog",
			want: []string{"dog"},
		},
		{
			name: "all stop words",
			text: "the and of to",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFitVectorizerEmptyVocabulary(t *testing.T) {
	_, err := fitVectorizer([]string{"the and of", "to in on"}, 100)
	if !errors.Is(err, errEmptyVocabulary) {
		t.Errorf("fitVectorizer() error = %v, want errEmptyVocabulary", err)
	}
}

func TestFitVectorizerMaxFeatures(t *testing.T) {
	texts := []string{
		"apple banana cherry",
		"apple banana",
		"apple",
	}
	v, err := fitVectorizer(texts, 2)
	if err != nil {
		t.Fatalf("fitVectorizer() error = %v", err)
	}
	if len(v.vocab) != 2 {
		t.Fatalf("vocab size = %d, want 2", len(v.vocab))
	}
	// apple (3) and banana (2) outrank everything else.
	if _, ok := v.vocab["apple"]; !ok {
		t.Error("vocab should keep the most frequent term apple")
	}
	if _, ok := v.vocab["banana"]; !ok {
		t.Error("vocab should keep banana over less frequent terms")
	}
}

func TestCosine(t *testing.T) {
	texts := []string{
		"kubernetes cluster networking",
		"kubernetes cluster networking",
		"pasta sauce recipe",
	}
	v, err := fitVectorizer(texts, 100)
	if err != nil {
		t.Fatalf("fitVectorizer() error = %v", err)
	}

	a := v.transform(texts[0])
	b := v.transform(texts[1])
	c := v.transform(texts[2])

	if sim := cosine(a, b); math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("cosine(identical) = %v, want 1.0", sim)
	}
	if sim := cosine(a, c); sim != 0 {
		t.Errorf("cosine(disjoint) = %v, want 0", sim)
	}
}

func TestCosineZeroVector(t *testing.T) {
	v, err := fitVectorizer([]string{"apple banana", "cherry melon"}, 100)
	if err != nil {
		t.Fatalf("fitVectorizer() error = %v", err)
	}

	// A sentence of only stop words maps to the zero vector; its
	// similarity to anything is defined as 0.
	zero := v.transform("the and of")
	other := v.transform("apple banana")
	if sim := cosine(zero, other); sim != 0 {
		t.Errorf("cosine(zero, other) = %v, want 0", sim)
	}
}
