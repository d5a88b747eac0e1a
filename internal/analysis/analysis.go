// Package analysis implements the analyser (spec §4.9, component 10): mass,
// structural hashing, species histograms and Shannon entropy over
// populations of arena expressions.
package analysis

import (
	"cmp"
	"math"
	"slices"

	"lambdasoup/internal/arena"
	"lambdasoup/internal/printer"
)

// Mass is the AST node count of e (Var=1, Magic=1, Fun=1+mass(body),
// App=1+mass(lhs)+mass(rhs)), per spec §4.2.
func Mass(ar *arena.Arena, e arena.Index) int {
	switch ar.Kind(e) {
	case arena.KindVar, arena.KindMagic:
		return 1
	case arena.KindFun:
		_, body := ar.Fun(e)
		return 1 + Mass(ar, body)
	case arena.KindApp:
		lhs, rhs := ar.App(e)
		return 1 + Mass(ar, lhs) + Mass(ar, rhs)
	default:
		panic("analysis: Mass: unknown kind")
	}
}

// djb2 mixes a byte string into the classic DJB2 hash, the mixing function
// spec §4.9 suggests.
func djb2(seed uint64, s string) uint64 {
	h := seed
	for i := 0; i < len(s); i++ {
		h = h*33 + uint64(s[i])
	}
	return h
}

// Hash computes a deterministic structural hash of e. Per spec §4.9, two
// Var occurrences with the same label hash equally regardless of their
// alpha-renaming tag — this is achieved by hashing the canonical
// ("no-tags") pretty-print of e rather than walking the tagged tree
// directly, which keeps species-identity stable across the alpha-renamed
// copies the reducer produces.
func Hash(ar *arena.Arena, e arena.Index) uint64 {
	return hashString(printer.PrintNoTags(ar, e))
}

// SpeciesKey is the statistics species key spec §4.7 names explicitly:
// "the pretty-printed string including α-tags". Unlike Hash, two
// alpha-renamed copies of the same combinator are distinct species under
// SpeciesKey — this is what the gas reactor's periodic unique-species and
// entropy snapshot uses, deliberately more granular than the
// tag-insensitive structural Hash used for the grid's generation tracking
// and the reaction-network export.
func SpeciesKey(ar *arena.Arena, e arena.Index) string {
	return printer.Print(ar, e)
}

func hashString(s string) uint64 {
	const offset = 5381
	h := djb2(offset, s)
	// final avalanche mix so nearby strings (e.g. differing by one
	// character) don't produce nearby hashes.
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}

// SpeciesCount is one run of the species histogram: a species key (either
// a Hash or a SpeciesKey string, depending on the caller) and how many
// population members share it.
type SpeciesCount[K cmp.Ordered] struct {
	Key   K
	Count int
}

// Histogram sorts the population's species keys and run-length encodes
// them, per spec §4.9's species_histogram. K is instantiated with uint64
// for Hash-keyed histograms or string for SpeciesKey-keyed ones.
func Histogram[K cmp.Ordered](keys []K) []SpeciesCount[K] {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	var hist []SpeciesCount[K]
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		hist = append(hist, SpeciesCount[K]{Key: sorted[i], Count: j - i})
		i = j
	}
	return hist
}

// Entropy computes the Shannon entropy -Σ p_i·ln(p_i) of a histogram, per
// spec §4.9.
func Entropy[K cmp.Ordered](hist []SpeciesCount[K]) float64 {
	total := 0
	for _, s := range hist {
		total += s.Count
	}
	if total == 0 {
		return 0
	}
	var h float64
	for _, s := range hist {
		p := float64(s.Count) / float64(total)
		h -= p * math.Log(p)
	}
	return h
}

// MaxFrequency returns the largest SpeciesCount.Count in hist, or 0 if hist
// is empty (used by the gas reactor's periodic time-series row, spec §4.7).
func MaxFrequency[K cmp.Ordered](hist []SpeciesCount[K]) int {
	max := 0
	for _, s := range hist {
		if s.Count > max {
			max = s.Count
		}
	}
	return max
}
