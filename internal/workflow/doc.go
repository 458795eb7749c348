// Package workflow implements the iterative generate-critique loop that
// turns a block of input text into platform-tailored social media posts.
//
// One run edits the input text once, then loops both platform pipelines
// through write and critique rounds until each platform has accumulated the
// configured number of drafts. The graph is static: an edit stage, a writer
// fan-out over both platforms, a convergence gate, and a conditional critique
// fan-out that feeds back into the writers. The Engine walks an explicit
// transition table over enumerated stages; the gate is the only branch.
//
// The two platform workspaces are independent, so the writer and critique
// fan-outs run both platforms concurrently and join at the gate. Any text
// generation failure aborts the run; no partial state is returned.
package workflow
