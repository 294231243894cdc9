package consts

const (
	LF  = byte('\n')
	TAB = byte('\t')

	K = 1024
	M = 1024 * K

	FileBufferSize      = 64 * K
	FileSortShardSize   = 4 * M
	FileMergeBufferSize = 16 * M

	InsertBatch = 2 * K

	UniProtChunkSize = 50
	UniProtPageSize  = 499
	UniProtRetries   = 3
)
