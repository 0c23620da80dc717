package anthropic

// CachedSystemBlocks constructs system content blocks with a cache
// breakpoint at a 1-hour TTL. The registry listings embedded in extraction
// prompts are identical for every email in a job, so the shared prefix is
// cached once and read back for the rest of the run.
func CachedSystemBlocks(text string) []SystemBlock {
	return []SystemBlock{
		{
			Text:         text,
			CacheControl: &CacheControl{TTL: "1h"},
		},
	}
}
