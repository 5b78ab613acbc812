package explorer

import (
	"sort"
	"strings"
	"sync"

	"github.com/mirroir/uiexplorer/utils"
)

// pathfinderWorkers bounds how many leaves are named concurrently,
// grounded on exec.go's fixed-size worker pool reading off a jobs
// channel (there: image tiles; here: graph leaves).
const pathfinderWorkers = 4

// Path is one root-to-leaf route through a NavigationGraph, annotated
// with a human-readable Name for a manifest or report.
type Path struct {
	Name  string
	Edges []GraphEdge
	Leaf  ScreenFingerprint
}

// ExploredScreen is one hop of a Path resolved back against its
// GraphNode, used to render a walkthrough without re-deriving the graph.
// Carries the full per-screen payload (spec §4.11: index, elements,
// hints, actionType, arrivedVia, screenshotBase64) so a manifest or
// replay UI never needs to look the fingerprint back up in the graph.
type ExploredScreen struct {
	Index            int
	Fingerprint      ScreenFingerprint
	Elements         []TapPoint
	Hints            []string
	ActionType       ActionType
	ArrivedVia       string
	ScreenshotBase64 string
	ScreenType       ScreenType
}

// FindInterestingPaths extracts every root-to-leaf path in snapshot. A
// leaf is a node with no outgoing edges, or a node sitting at the
// deepest depth observed anywhere in the graph despite having outgoing
// edges (a budget cutoff, not a true dead end, but still worth
// reporting as a frontier the run reached). Paths are reconstructed via
// a single BFS shortest-path tree from root and named concurrently by a
// small worker pool, mirroring exec.go's channel-fed worker pool
// generalized from "resize one image tile" to "name one leaf's path".
func FindInterestingPaths(snapshot GraphSnapshot) []Path {
	if len(snapshot.Nodes) == 0 {
		return nil
	}

	outgoing := map[ScreenFingerprint][]GraphEdge{}
	for _, e := range snapshot.Edges {
		outgoing[e.FromFingerprint] = append(outgoing[e.FromFingerprint], e)
	}

	maxDepth := 0
	for _, n := range snapshot.Nodes {
		maxDepth = utils.Max(maxDepth, n.Depth)
	}

	var leaves []ScreenFingerprint
	for fp, n := range snapshot.Nodes {
		if len(outgoing[fp]) == 0 || n.Depth == maxDepth {
			leaves = append(leaves, fp)
		}
	}

	parent := shortestPathTree(snapshot, outgoing)

	jobs := make(chan ScreenFingerprint, len(leaves))
	results := make(chan Path, len(leaves))
	var wg sync.WaitGroup
	for i := 0; i < pathfinderWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for leaf := range jobs {
				edges := reconstructPath(leaf, parent)
				results <- Path{
					Name:  namePath(edges, snapshot, leaf),
					Edges: edges,
					Leaf:  leaf,
				}
			}
		}()
	}
	for _, leaf := range leaves {
		jobs <- leaf
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	paths := make([]Path, 0, len(leaves))
	for p := range results {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].Name < paths[j].Name })
	return paths
}

// shortestPathTree runs one BFS from root over outgoing, recording the
// single edge used to first reach each node -- the standard shortest-
// path-tree construction, since every edge has unit weight.
func shortestPathTree(snapshot GraphSnapshot, outgoing map[ScreenFingerprint][]GraphEdge) map[ScreenFingerprint]GraphEdge {
	parent := map[ScreenFingerprint]GraphEdge{}
	visited := map[ScreenFingerprint]struct{}{snapshot.RootFingerprint: {}}
	queue := []ScreenFingerprint{snapshot.RootFingerprint}

	for len(queue) > 0 {
		fp := queue[0]
		queue = queue[1:]
		for _, e := range outgoing[fp] {
			if _, seen := visited[e.ToFingerprint]; seen {
				continue
			}
			visited[e.ToFingerprint] = struct{}{}
			parent[e.ToFingerprint] = e
			queue = append(queue, e.ToFingerprint)
		}
	}
	return parent
}

// reconstructPath walks parent backward from leaf to root, returning the
// edges in root-to-leaf order.
func reconstructPath(leaf ScreenFingerprint, parent map[ScreenFingerprint]GraphEdge) []GraphEdge {
	var edges []GraphEdge
	for fp := leaf; ; {
		edge, ok := parent[fp]
		if !ok {
			break
		}
		edges = append(edges, edge)
		fp = edge.FromFingerprint
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}

// namePath renders a path as "first > second" for short paths, or
// "first-hop to landmark" for longer ones, where landmark is the leaf's
// longest purely-alphabetic element text.
func namePath(edges []GraphEdge, snapshot GraphSnapshot, leaf ScreenFingerprint) string {
	if len(edges) == 0 {
		return "root"
	}
	if len(edges) <= 2 {
		labels := make([]string, len(edges))
		for i, e := range edges {
			labels[i] = e.ElementText
		}
		return strings.Join(labels, " > ")
	}

	landmark := longestAlphabeticText(snapshot.Nodes[leaf].Elements)
	if landmark == "" {
		landmark = edges[len(edges)-1].ElementText
	}
	return edges[0].ElementText + " to " + landmark
}

func longestAlphabeticText(elements []TapPoint) string {
	best := ""
	for _, e := range elements {
		if !isAlphabeticText(e.Text) {
			continue
		}
		if len(e.Text) > len(best) {
			best = e.Text
		}
	}
	return best
}

func isAlphabeticText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ') {
			return false
		}
	}
	return true
}

// PathToExploredScreens resolves a path's edges back against snapshot's
// nodes for rendering, prepending the root screen so the walkthrough
// starts from launch instead of the first tap (spec §4.11: "for root +
// each destination"). index increases strictly by one per hop, giving
// the §8 round-trip property ("N' <= N screens with strictly increasing
// index") something to check.
func PathToExploredScreens(edges []GraphEdge, snapshot GraphSnapshot) []ExploredScreen {
	out := make([]ExploredScreen, 0, len(edges)+1)

	root := snapshot.Nodes[snapshot.RootFingerprint]
	out = append(out, ExploredScreen{
		Index:            0,
		Fingerprint:      snapshot.RootFingerprint,
		Elements:         root.Elements,
		Hints:            root.Hints,
		ActionType:       ActionLaunch,
		ArrivedVia:       "",
		ScreenshotBase64: root.ScreenshotBase64,
		ScreenType:       root.ScreenType,
	})

	for i, e := range edges {
		n := snapshot.Nodes[e.ToFingerprint]
		out = append(out, ExploredScreen{
			Index:            i + 1,
			Fingerprint:      e.ToFingerprint,
			Elements:         n.Elements,
			Hints:            n.Hints,
			ActionType:       e.ActionType,
			ArrivedVia:       e.ElementText,
			ScreenshotBase64: n.ScreenshotBase64,
			ScreenType:       n.ScreenType,
		})
	}
	return out
}
