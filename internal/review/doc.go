// Package review turns per-file LLM critiques into a pull request review.
//
// The aggregation half ([Aggregate], [ComputeStats], [Recommend],
// [InlineComments], [RenderBody]) is pure and never logs. The [Engine]
// drives a run: it selects files through the selector package, fetches and
// redacts their content, prompts a [providers.Generator] once per file with
// bounded concurrency, parses each response with [ParseFinding] and hands
// the results to [Aggregate].
//
// A file whose review fails is represented by [FailedFinding] and still
// counts toward the average score.
package review
