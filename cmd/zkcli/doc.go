// Package main hosts the zkcli entrypoint and command graph.
//
// The Cobra-based command tree maps ls, tree, cat, rm, write, create and
// stat onto the namespace packages: paths are sanitized through zpath,
// subtrees are walked with traverse, payloads come from content and every
// ephemeral node created during a command is registered with an ephemeral
// manager whose cleanup runs before the process exits. Configuration and
// logging are resolved once per invocation in commandContext.
//
// Keep this package lean: add behaviour to the internal packages first, then
// surface it through a command or flag here.
package main
