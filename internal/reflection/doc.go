// Package reflection analyzes task dependency graphs and turns them into
// executable plans: a validated graph, per-task complexity estimates, a
// deterministic execution order and parallel execution groups.
//
// # Pipeline
//
// A reflection pass runs four stages over an immutable task graph:
//
//  1. Validation collects every structural defect in one pass, both
//     dangling dependency references and dependency cycles, instead of
//     stopping at the first problem.
//  2. Scoring estimates each task's complexity from its category, its
//     dependency fan-in and fan-out, and keywords in its title.
//  3. Sequencing produces a topological order with lexicographic tie
//     breaking, so equal inputs always produce the same sequence.
//  4. Grouping partitions tasks by dependency depth and splits each depth
//     group into parallelizable and sequential members by task category.
//
// The stages are pure functions of the graph and the configuration. Nothing
// in this package reads the clock, the environment or the filesystem, apart
// from the timestamp the Engine stamps on a finished Result.
//
// # Usage
//
//	graph, err := reflection.NewGraph(tasks)
//	if err != nil {
//		return err
//	}
//	engine := reflection.NewEngine(reflection.DefaultConfig())
//	result, err := engine.Reflect(graph)
//	if err != nil {
//		return err
//	}
//	for _, task := range result.Tasks {
//		fmt.Println(task.Order, task.ID, task.Complexity)
//	}
//
// Individual stages are also exported (Validate, Score, TopologicalOrder,
// ParallelGroups, Analyze, DispatchOrder) for callers that need a single
// answer rather than a full pass.
package reflection
