package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"enzymepipe/config"
	"enzymepipe/database"
	"enzymepipe/dataset"
	"enzymepipe/embed"
	"enzymepipe/enzyme"
	"enzymepipe/filesort"
	"enzymepipe/log"
	"enzymepipe/pprof"
	"enzymepipe/rver"
	"enzymepipe/uniprot"
	"enzymepipe/util"
	"enzymepipe/validate"
)

var (
	configPath  *string
	enzymeDat   *string
	masterPath  *string
	tensorPath  *string
	dstIP       *string
	dstPort     *int
	dstUser     *string
	dstPassword *string
	dstDatabase *string
	dstTable    *string
	verbose     *bool
	enablePprof *bool
)

// usage example:
//
//	./enzymepipe --config config/config.yaml parse
//	./enzymepipe fetch
//	./enzymepipe --dst_ip 127.0.0.1 --dst_port 3306 --dst_user root --dst_password secret load
//	./enzymepipe all
func init() {
	configPath = flag.String("config", "config/config.yaml", "path of the pipeline config file")
	enzymeDat = flag.String("enzyme_dat", "", "path of enzyme.dat, overrides config")
	masterPath = flag.String("master", "", "path of enzyme_master.tsv, overrides config")
	tensorPath = flag.String("tensor", "", "path of the embedding tensor, overrides config")
	dstIP = flag.String("dst_ip", "", "ip of dst database address")
	dstPort = flag.Int("dst_port", 0, "port of dst database address")
	dstUser = flag.String("dst_user", "", "user name of dst database")
	dstPassword = flag.String("dst_password", "", "password of dst database")
	dstDatabase = flag.String("dst_database", "", "database name, overrides config")
	dstTable = flag.String("dst_table", "", "table name, overrides config")
	verbose = flag.Bool("verbose", false, "debug logging")
	enablePprof = flag.Bool("pprof", false, "start the pprof server on :8000")

	flag.Parse()
}

func main() {
	start := time.Now().UnixNano()
	_main()
	log.Infof("time-consuming %dms", (time.Now().UnixNano()-start)/1e6)
	log.Sync()
}

func _main() {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Panic(err)
	}
	overrideConfig(cfg)
	log.Init(cfg.LogFile, cfg.Verbose)
	if *enablePprof {
		go func() {
			if err := pprof.StartPprofServer(); err != nil {
				log.Error(err)
			}
		}()
	}

	stage := flag.Arg(0)
	if stage == "" {
		fmt.Fprintln(os.Stderr, "usage: enzymepipe [flags] parse|explode|fetch|missing|merge|validate|load|all")
		os.Exit(2)
	}
	runID := uuid.NewString()[:8]
	log.Infof("run %s stage %s", runID, stage)

	p := pipeline{cfg: cfg, ctx: context.Background()}
	switch stage {
	case "parse":
		p.parse()
	case "explode":
		p.explode()
	case "fetch":
		p.fetch()
	case "missing":
		p.missing()
	case "merge":
		p.merge()
	case "validate":
		p.validate()
	case "load":
		p.load()
	case "all":
		p.parse()
		p.explode()
		p.fetch()
		p.missing()
		p.merge()
		p.validate()
		p.load()
	default:
		log.Panic(fmt.Errorf("unknown stage %q", stage))
	}
}

func overrideConfig(cfg *config.Config) {
	if *enzymeDat != "" {
		cfg.Data.EnzymeDat = *enzymeDat
	}
	if *masterPath != "" {
		cfg.Data.Master = *masterPath
	}
	if *tensorPath != "" {
		cfg.Data.Tensor = *tensorPath
	}
	if *dstIP != "" {
		cfg.DB.IP = *dstIP
	}
	if *dstPort != 0 {
		cfg.DB.Port = *dstPort
	}
	if *dstUser != "" {
		cfg.DB.User = *dstUser
	}
	if *dstPassword != "" {
		cfg.DB.Password = *dstPassword
	}
	if *dstDatabase != "" {
		cfg.DB.Database = *dstDatabase
	}
	if *dstTable != "" {
		cfg.DB.Table = *dstTable
	}
	if *verbose {
		cfg.Verbose = true
	}
}

type pipeline struct {
	cfg *config.Config
	ctx context.Context
}

func (p *pipeline) checkpoint(name string) *rver.Recover {
	if err := os.MkdirAll(p.cfg.Data.WorkDir, os.FileMode(0766)); err != nil {
		log.Panic(err)
	}
	ck, err := rver.New(util.AssemblePath(p.cfg.Data.WorkDir, name))
	if err != nil {
		log.Panic(err)
	}
	return ck
}

func (p *pipeline) parse() {
	if _, err := enzyme.WriteRaw(p.cfg.Data.EnzymeDat, p.cfg.Data.Raw); err != nil {
		log.Panic(err)
	}
}

func (p *pipeline) explode() {
	if _, err := dataset.Explode(p.cfg.Data.Raw, p.cfg.Data.Pairs); err != nil {
		log.Panic(err)
	}
}

func (p *pipeline) fetch() {
	client := uniprot.NewClient(
		p.cfg.UniProt.URL,
		p.cfg.UniProt.ChunkSize,
		time.Duration(p.cfg.UniProt.SleepMs)*time.Millisecond,
		p.cfg.UniProt.Retries,
	)
	ck := p.checkpoint("fetch.recover")
	if err := client.Download(p.ctx, p.cfg.Data.Pairs, p.cfg.Data.Sequences, ck); err != nil {
		log.Panic(err)
	}
}

func (p *pipeline) missing() {
	if _, err := uniprot.FindMissing(p.cfg.Data.Pairs, p.cfg.Data.Sequences, p.cfg.Data.MissingIDs); err != nil {
		log.Panic(err)
	}
}

func (p *pipeline) merge() {
	unsorted := util.AssemblePath(p.cfg.Data.WorkDir, "master.unsorted.tsv")
	sorted := util.AssemblePath(p.cfg.Data.WorkDir, "master.sorted.tsv")
	if _, _, err := dataset.Merge(p.cfg.Data.Raw, p.cfg.Data.Pairs, p.cfg.Data.Sequences, unsorted); err != nil {
		log.Panic(err)
	}
	ck := p.checkpoint("sort.recover")
	fs, err := filesort.New([]string{unsorted}, ck)
	if err != nil {
		log.Panic(err)
	}
	defer fs.Close()
	if err := fs.Sorting(sorted); err != nil {
		log.Panic(err)
	}
	if _, err := dataset.Finalize(fs.Result(), p.cfg.Data.Master, p.cfg.Data.Manifest); err != nil {
		log.Panic(err)
	}
	// The next merge starts over.
	if err := ck.Make(0, ""); err != nil {
		log.Panic(err)
	}
}

func (p *pipeline) validate() {
	tensorRows := int64(-1)
	if p.cfg.Data.Tensor != "" {
		h, err := embed.ReadHeader(p.cfg.Data.Tensor)
		if err != nil {
			if os.IsNotExist(err) {
				log.Warnf("tensor %s absent, skipping emb_idx bounds check", p.cfg.Data.Tensor)
			} else {
				log.Panic(err)
			}
		} else {
			tensorRows = int64(h.Rows)
		}
	}
	report, err := validate.Run(p.cfg.Data.Master, tensorRows)
	if err != nil {
		log.Panic(err)
	}
	report.Render(os.Stdout)
	report.Log()
	if report.Critical() {
		log.Errorf("validation found critical fields")
		os.Exit(1)
	}
}

func (p *pipeline) load() {
	db, err := database.New(p.cfg.DB.IP, p.cfg.DB.Port, p.cfg.DB.User, p.cfg.DB.Password)
	if err != nil {
		log.Panic(err)
	}
	defer db.Close()
	inserted, err := db.LoadMaster(p.cfg.Data.Master, p.cfg.DB.Database, p.cfg.DB.Table)
	if err != nil {
		log.Panic(err)
	}
	log.Infof("load finished, %d rows inserted this run", inserted)
}
