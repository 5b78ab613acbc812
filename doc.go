/*
Package explorer drives an autonomous walk of a mobile (or, by the same
interfaces, desktop) application's UI. Given a running application, a
stream of OCR-derived text elements per screen, and an input actuator
capable of tapping, swiping and pressing keys, it builds a navigation
graph of the screens it visits and, at the end of a run, extracts
reusable root-to-leaf action paths ("skills") from that graph.

The package is organized the way a seam-carving pipeline is organized in
its ancestor library: a handful of pure, composable transforms
(Fingerprint, ElementClassifier, ComponentDetector, ScreenPlanner) feed
a stateful traversal engine (NavigationGraph, DFSExplorer, BFSExplorer)
that is driven one step at a time by an outer caller.

A minimal integration looks like:

	sess := explorer.NewSession()
	sess.Start("MyApp", "", nil)

	strat := explorer.NewMobileStrategy()
	dfs := explorer.NewDFSExplorer(sess, strat, explorer.DefaultBudget())

	for {
		res := dfs.Step(context.Background(), describer, actuator)
		if res.Kind == explorer.StepFinished {
			break
		}
	}

	data := sess.Finalize()
	paths := explorer.FindInterestingPaths(data.GraphSnapshot)
*/
package explorer
