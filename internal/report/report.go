// Package report renders reflection results as a markdown document
// suitable for checking into a repo next to the tasks file.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/taskreflect/taskreflect/internal/reflection"
	"github.com/taskreflect/taskreflect/internal/util"
)

const (
	defaultTopTasks = 5
	maxTitleWidth   = 60
)

// Options controls optional report content.
type Options struct {
	// TopTasks is the length of the hardest-tasks ranking.
	// Zero uses the default of 5.
	TopTasks int
}

// Build renders a markdown report for a completed reflection pass.
// The result and analysis must come from the same graph. Build is pure;
// the generated timestamp is the result's ReflectedAt.
func Build(res *reflection.Result, an *reflection.Analysis, opts Options) string {
	topTasks := opts.TopTasks
	if topTasks <= 0 {
		topTasks = defaultTopTasks
	}

	var b strings.Builder

	b.WriteString("# Task Reflection Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", res.Meta.ReflectedAt.Format(time.RFC3339)))

	writeSummary(&b, res, an)
	writeExecutionOrder(&b, res)
	writeGroups(&b, res)
	writeComplexitySummary(&b, res)
	writeHardestTasks(&b, res, topTasks)
	writeBreakdowns(&b, an)
	writeCriticalPath(&b, an)

	return b.String()
}

func writeSummary(b *strings.Builder, res *reflection.Result, an *reflection.Analysis) {
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Tasks: %d\n", an.TaskCount))
	b.WriteString(fmt.Sprintf("- Dependency edges: %d\n", an.EdgeCount))
	b.WriteString(fmt.Sprintf("- Parallel groups: %d\n", an.GroupCount))

	if len(res.Scores) > 0 {
		minScore, maxScore, sum := 0.0, 0.0, 0.0
		first := true
		for _, score := range res.Scores {
			if first {
				minScore, maxScore = score, score
				first = false
			}
			if score < minScore {
				minScore = score
			}
			if score > maxScore {
				maxScore = score
			}
			sum += score
		}
		avg := sum / float64(len(res.Scores))
		b.WriteString(fmt.Sprintf("- Complexity: avg %.2f, min %.2f, max %.2f\n", avg, minScore, maxScore))
	}

	if len(res.Meta.Warnings) > 0 {
		b.WriteString(fmt.Sprintf("- Warnings: %d\n", len(res.Meta.Warnings)))
	}
	b.WriteString("\n")
}

func writeExecutionOrder(b *strings.Builder, res *reflection.Result) {
	b.WriteString("## Execution Order\n\n")
	for i, id := range res.Order {
		task := res.Task(id)
		if task == nil {
			continue
		}
		line := fmt.Sprintf("%d. **%s**", i+1, id)
		if task.Title != "" {
			line += ": " + util.TruncateString(task.Title, maxTitleWidth)
		}
		line += fmt.Sprintf(" (complexity %.2f)", task.Complexity)
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeGroups(b *strings.Builder, res *reflection.Result) {
	if len(res.Groups) == 0 {
		return
	}

	b.WriteString("## Parallel Groups\n\n")
	for _, grp := range res.Groups {
		b.WriteString(fmt.Sprintf("### Level %d\n\n", grp.Level))
		if len(grp.Parallelizable) > 0 {
			b.WriteString(fmt.Sprintf("- Parallelizable: %s\n", strings.Join(grp.Parallelizable, ", ")))
		}
		if len(grp.Sequential) > 0 {
			b.WriteString(fmt.Sprintf("- Sequential: %s\n", strings.Join(grp.Sequential, ", ")))
		}
		b.WriteString("\n")
	}
}

func writeComplexitySummary(b *strings.Builder, res *reflection.Result) {
	b.WriteString("## Complexity Summary\n\n")

	dependents := make(map[string]int)
	for _, task := range res.Tasks {
		for _, dep := range task.Deps {
			dependents[dep]++
		}
	}

	for _, task := range res.Tasks {
		b.WriteString(fmt.Sprintf("- **%s**: type=%s deps=%d dependents=%d complexity=%.2f order=%d\n",
			task.ID, task.Category(), len(task.Deps), dependents[task.ID], task.Complexity, task.Order))
	}
	b.WriteString("\n")
}

func writeHardestTasks(b *strings.Builder, res *reflection.Result, topTasks int) {
	if len(res.Tasks) == 0 {
		return
	}

	ranked := make([]reflection.Task, len(res.Tasks))
	copy(ranked, res.Tasks)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Complexity != ranked[j].Complexity {
			return ranked[i].Complexity > ranked[j].Complexity
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > topTasks {
		ranked = ranked[:topTasks]
	}

	b.WriteString("## Hardest Tasks\n\n")
	for i, task := range ranked {
		line := fmt.Sprintf("%d. **%s** (%.2f)", i+1, task.ID, task.Complexity)
		if task.Title != "" {
			line += ": " + util.TruncateString(task.Title, maxTitleWidth)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeBreakdowns(b *strings.Builder, an *reflection.Analysis) {
	if len(an.TypeCounts) > 0 {
		b.WriteString("## Type Breakdown\n\n")
		types := make([]string, 0, len(an.TypeCounts))
		for typ := range an.TypeCounts {
			types = append(types, string(typ))
		}
		sort.Strings(types)
		for _, typ := range types {
			b.WriteString(fmt.Sprintf("- %s: %d\n", typ, an.TypeCounts[reflection.TaskType(typ)]))
		}
		b.WriteString("\n")
	}

	if len(an.ModuleCounts) > 0 {
		b.WriteString("## Module Breakdown\n\n")
		modules := make([]string, 0, len(an.ModuleCounts))
		for module := range an.ModuleCounts {
			modules = append(modules, module)
		}
		sort.Strings(modules)
		for _, module := range modules {
			b.WriteString(fmt.Sprintf("- %s: %d\n", module, an.ModuleCounts[module]))
		}
		b.WriteString("\n")
	}
}

func writeCriticalPath(b *strings.Builder, an *reflection.Analysis) {
	if len(an.CriticalPath) == 0 {
		return
	}

	b.WriteString("## Critical Path\n\n")
	b.WriteString(strings.Join(an.CriticalPath, " -> ") + "\n\n")
	b.WriteString(fmt.Sprintf("Parallelism score: %.2f / 100\n", an.ParallelismScore))
	if len(an.Bottlenecks) > 0 {
		b.WriteString(fmt.Sprintf("Bottlenecks: %s\n", strings.Join(an.Bottlenecks, ", ")))
	}
	b.WriteString("\n")
}
