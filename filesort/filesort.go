package filesort

import (
	"bufio"
	"io"
	"os"
	"sort"
	"sync"

	"enzymepipe/consts"
	"enzymepipe/file"
	"enzymepipe/log"
	"enzymepipe/model"
	"enzymepipe/rver"
)

const FlagSorted = 1

// FileSorter externally sorts master rows from one or more source TSVs
// into a single ordered, deduplicated result file. Rows share identity
// by (EC_number, UniProt_ID); the richer row wins.
type FileSorter struct {
	sync.Mutex
	sources []*fileBuffer
	result  string
	ck      *rver.Recover
}

type mergeValue struct {
	shard *memBuffer
	l     *loser
	row   *model.Master
}

func (mv *mergeValue) next() error {
	row, err := mv.shard.NextRow()
	if err != nil {
		return err
	}
	mv.row = row
	return nil
}

func (mv *mergeValue) Compare(o interface{}) bool {
	ov := o.(*mergeValue)
	cur := mv.row
	next := ov.row
	if cur.Key() != next.Key() {
		return cur.Compare(next) > 0
	}
	if next.Richer(cur) {
		mv.row = next
	}
	err := ov.next()
	if err != nil {
		ov.row = nil
		ov.l.exit()
		return false
	}
	ov.l.contest()
	return mv.Compare(ov)
}

func New(paths []string, ck *rver.Recover) (*FileSorter, error) {
	sources := make([]*fileBuffer, 0, len(paths))
	for _, path := range paths {
		f, err := file.New(path, os.O_RDONLY)
		if err != nil {
			return nil, err
		}
		fb, err := newFileBuffer(f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fb)
	}
	return &FileSorter{
		sources: sources,
		ck:      ck,
	}, nil
}

// Result is the path of the sorted output, valid after Sorting.
func (fs *FileSorter) Result() string {
	return fs.result
}

// Sorting shards every source into sorted runs, then merges the runs
// into resultPath. A completed previous run is reused via the
// checkpoint.
func (fs *FileSorter) Sorting(resultPath string) error {
	flag, payload, err := fs.ck.Load()
	if err != nil {
		return err
	}
	if flag == FlagSorted && payload != "" {
		if _, err := os.Stat(payload); err == nil {
			log.Infof("sort already done, reusing %s", payload)
			fs.result = payload
			return nil
		}
	}
	wg := sync.WaitGroup{}
	wg.Add(len(fs.sources))
	shards := make([]*memBuffer, 0)
	var firstErr error
	for i := 0; i < len(fs.sources); i++ {
		source := fs.sources[i]
		go func() {
			defer wg.Done()
			ss, err := fs.shardingSource(source)
			fs.Lock()
			defer fs.Unlock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			shards = append(shards, ss...)
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	log.Infof("sharding finished: %d runs from %d sources", len(shards), len(fs.sources))
	if err := fs.merging(shards, resultPath); err != nil {
		return err
	}
	fs.result = resultPath
	return fs.ck.Make(FlagSorted, resultPath)
}

func (fs *FileSorter) shardingSource(source *fileBuffer) ([]*memBuffer, error) {
	var lastPos int64
	rows := make(model.Masters, 0)
	shards := make([]*memBuffer, 0)
	for {
		row, nextErr := source.NextRow()
		if nextErr != nil && nextErr != io.EOF {
			return nil, nextErr
		}
		if row != nil {
			rows = append(rows, row)
		}
		if source.pos()-lastPos > consts.FileSortShardSize || nextErr != nil {
			lastPos = source.pos()
			if len(rows) > 0 {
				sort.Sort(&rows)
				shards = append(shards, newMemBuffer(collapse(rows)))
				rows = make(model.Masters, 0)
			}
			if nextErr != nil {
				break
			}
		}
	}
	return shards, nil
}

// collapse drops duplicate keys from a sorted run, keeping the richer
// row.
func collapse(rows model.Masters) model.Masters {
	out := make(model.Masters, 0, len(rows))
	for _, row := range rows {
		if n := len(out); n > 0 && out[n-1].Key() == row.Key() {
			if row.Richer(out[n-1]) {
				out[n-1] = row
			}
			continue
		}
		out = append(out, row)
	}
	return out
}

func (fs *FileSorter) merging(shards []*memBuffer, resultPath string) error {
	losers := make([]*loser, 0)
	for _, shard := range shards {
		shard.Reset()
		l := &loser{}
		mv := &mergeValue{
			shard: shard,
			l:     l,
		}
		l.value = mv
		if err := mv.next(); err != nil {
			continue
		}
		losers = append(losers, l)
	}
	lt := newLoserTree(losers)

	out, err := file.Create(resultPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, consts.FileMergeBufferSize)
	tw, err := model.NewTSVWriter(bw, model.MasterHeader)
	if err != nil {
		return err
	}
	total := 0
	for !lt.root().invalid {
		l := lt.root()
		v := l.value.(*mergeValue)
		if err := tw.Write(v.row.Record()); err != nil {
			return err
		}
		total++
		if err := v.next(); err != nil {
			l.exit()
			continue
		}
		l.contest()
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	log.Infof("merge finished: %d rows -> %s", total, resultPath)
	return out.Sync()
}

func (fs *FileSorter) Close() {
	for _, s := range fs.sources {
		_ = s.f.Close()
	}
}
