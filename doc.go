// Package kismetdc decompiles Unreal Engine Kismet script bytecode into a
// structured, readable program.
//
// The pipeline has four stages: ParseAll turns a function's raw script
// bytes into a tree of typed Expr nodes (an AST over the bytecode); BuildCFG
// lowers that expression list into a control-flow graph of basic blocks;
// ComputeDominatorTree / ComputePostDominatorTree / AnalyzeLoops compute the standard
// fix-point graph properties the structurer needs; Structure recovers ifs,
// loops and switches from the CFG using those properties.
//
// The package does not load the metadata document (see the jmap package)
// and does not render the structured output (see the render package) — it
// only decodes bytecode into the typed IR and structures its control flow.
package kismetdc
