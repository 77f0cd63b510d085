package selector

import "sort"

// Select filters files down to review candidates, scores them, and returns
// them by descending priority. Ties keep their input order. At most
// opts.MaxFiles candidates are returned; a non-positive MaxFiles returns
// every eligible file.
func Select(files []ChangedFile, opts Options) []Candidate {
	candidates := make([]Candidate, 0, len(files))
	for _, f := range files {
		if !Eligible(f, opts.ExcludePatterns) {
			continue
		}
		lang := DetectLanguage(f.Path)
		candidates = append(candidates, Candidate{
			ChangedFile: f,
			Language:    lang,
			Priority:    Priority(f.Path, f.Changes, lang),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	if opts.MaxFiles > 0 && len(candidates) > opts.MaxFiles {
		candidates = candidates[:opts.MaxFiles]
	}
	return candidates
}
