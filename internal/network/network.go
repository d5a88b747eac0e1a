// Package network builds the reaction-network export structure spec §6
// defines: a node per distinct species in a population, and a link per
// ordered species pair recording whether their application converges to
// an existing species. It depends on both internal/analysis (species
// identity) and internal/eval (bounded reduction) — kept out of
// internal/analysis itself, which internal/eval already depends on for
// Mass, to avoid an import cycle.
package network

import (
	"lambdasoup/internal/analysis"
	"lambdasoup/internal/arena"
	"lambdasoup/internal/eval"
	"lambdasoup/internal/printer"
)

// Node is one species entry in the exported network, per spec §6's
// `{"id":int,"label":str,"count":int}`.
type Node struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Link is one directed species-pair entry, per spec §6's
// `{"source":int,"target":int,"result":int or -1}`. Result is -1 unless
// `A B` reaches normal form inside bounds and the result matches an
// existing species in the network.
type Link struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Result int `json:"result"`
}

// Network is the full export structure spec §6 names.
type Network struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Build groups population by structural hash into species, then evaluates
// every ordered pair's application under (stepLimit, massLimit) to
// populate Links. Serializing the result to spec §6's JSON shape is left
// to the caller via encoding/json — no ecosystem JSON library appears
// anywhere in the retrieval pack for plain struct marshaling, so stdlib is
// the justified choice there.
func Build(ar *arena.Arena, reducer *eval.Reducer, population []arena.Index, stepLimit, massLimit int) Network {
	type species struct {
		rep   arena.Index
		count int
	}
	order := make([]uint64, 0)
	bySpecies := make(map[uint64]*species)
	for _, e := range population {
		h := analysis.Hash(ar, e)
		s, ok := bySpecies[h]
		if !ok {
			s = &species{rep: e}
			bySpecies[h] = s
			order = append(order, h)
		}
		s.count++
	}

	ids := make(map[uint64]int, len(order))
	nodes := make([]Node, len(order))
	for i, h := range order {
		s := bySpecies[h]
		ids[h] = i
		nodes[i] = Node{ID: i, Label: printer.PrintNoTags(ar, s.rep), Count: s.count}
	}

	var links []Link
	for si, sh := range order {
		for ti, th := range order {
			app := ar.NewApp(bySpecies[sh].rep, bySpecies[th].rep)
			result := reducer.EvalBounded(app, stepLimit, massLimit)
			link := Link{Source: si, Target: ti, Result: -1}
			if result.Outcome == eval.OutcomeDone {
				rh := analysis.Hash(ar, result.Value)
				if rid, ok := ids[rh]; ok {
					link.Result = rid
				}
			}
			links = append(links, link)
		}
	}

	return Network{Nodes: nodes, Links: links}
}
