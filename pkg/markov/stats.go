package markov

// ModelStats holds aggregated statistics for a Model.
type ModelStats struct {
	WordLength          int // The maximum number of words per continuation
	Sentences           int // The number of non-empty source sentences
	StartingWords       int // The number of starting word entries, duplicates included
	UniqueStartingWords int // The number of distinct starting words
	Vocabulary          int // The number of distinct words
	TotalLinks          int // The number of recorded links, End included
	EndLinks            int // The number of End links
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	unique := make(map[string]struct{}, len(m.startingWords))
	for _, word := range m.startingWords {
		unique[word] = struct{}{}
	}

	stats := ModelStats{
		WordLength:          m.wordLength,
		Sentences:           m.sentences,
		StartingWords:       len(m.startingWords),
		UniqueStartingWords: len(unique),
		Vocabulary:          len(m.links),
	}
	for _, links := range m.links {
		stats.TotalLinks += len(links)
		for _, link := range links {
			if link.IsEnd() {
				stats.EndLinks++
			}
		}
	}
	return stats
}
