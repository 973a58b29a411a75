package domain

// CorpusStats summarizes the indexed corpus for the stats endpoint.
type CorpusStats struct {
	TotalDocuments int
	TotalChunks    int
	Categories     map[string]int
	Languages      map[string]int
	FileTypes      map[string]int
	StorageBytes   int64
}
