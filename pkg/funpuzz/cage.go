package funpuzz

import "sort"

// cageTuples enumerates every ordered tuple over domain that combines
// to target under op. The predicates are order independent, so value
// multisets are checked once in non-decreasing order and each accepted
// multiset expands into all of its distinct orderings.
func cageTuples(domain []int, arity, target int, op Operation) [][]int {
	var tuples [][]int
	combo := make([]int, arity)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == arity {
			if cageSatisfied(combo, target, op) {
				tuples = append(tuples, permutations(combo)...)
			}
			return
		}
		for i := start; i < len(domain); i++ {
			combo[depth] = domain[i]
			walk(i, depth+1)
		}
	}
	walk(0, 0)
	return tuples
}

// cageSatisfied reports whether some ordering of vals reaches target
// under op. Subtraction folds as first minus the rest, which hits
// target exactly when some element e has 2e = target + sum. Division
// folds as first over the rest, which is exact when e*e = target*prod.
func cageSatisfied(vals []int, target int, op Operation) bool {
	switch op {
	case OpAdd:
		sum := 0
		for _, v := range vals {
			sum += v
		}
		return sum == target
	case OpMul:
		prod := 1
		for _, v := range vals {
			prod *= v
		}
		return prod == target
	case OpSub:
		sum := 0
		for _, v := range vals {
			sum += v
		}
		for _, v := range vals {
			if 2*v == target+sum {
				return true
			}
		}
		return false
	case OpDiv:
		prod := 1
		for _, v := range vals {
			prod *= v
		}
		for _, v := range vals {
			if v*v == target*prod {
				return true
			}
		}
		return false
	}
	return false
}

// permutations returns every distinct ordering of vals. Repeated
// values do not produce repeated orderings.
func permutations(vals []int) [][]int {
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	var out [][]int
	cur := make([]int, len(sorted))
	used := make([]bool, len(sorted))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(sorted) {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := range sorted {
			if used[i] || (i > 0 && sorted[i] == sorted[i-1] && !used[i-1]) {
				continue
			}
			used[i] = true
			cur[depth] = sorted[i]
			walk(depth + 1)
			used[i] = false
		}
	}
	walk(0)
	return out
}
