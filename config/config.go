package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Data struct {
	EnzymeDat  string `yaml:"enzyme_dat"`
	Raw        string `yaml:"raw"`
	Pairs      string `yaml:"pairs"`
	Sequences  string `yaml:"sequences"`
	MissingIDs string `yaml:"missing_ids"`
	Master     string `yaml:"master"`
	Manifest   string `yaml:"manifest"`
	Tensor     string `yaml:"tensor"`
	WorkDir    string `yaml:"work_dir"`
}

type UniProt struct {
	URL       string `yaml:"url"`
	ChunkSize int    `yaml:"chunk_size"`
	SleepMs   int    `yaml:"sleep_ms"`
	Retries   int    `yaml:"retries"`
}

type DB struct {
	IP       string `yaml:"ip"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

type Config struct {
	Data    Data    `yaml:"data"`
	UniProt UniProt `yaml:"uniprot"`
	DB      DB      `yaml:"db"`
	LogFile string  `yaml:"log_file"`
	Verbose bool    `yaml:"verbose"`
}

func Default() *Config {
	c := &Config{}
	c.Data.EnzymeDat = "data/raw/enzyme.dat"
	c.Data.Raw = "data/processed/enzyme_raw.tsv"
	c.Data.Pairs = "data/processed/enzyme_uniprot_pairs.tsv"
	c.Data.Sequences = "data/processed/uniprot_sequences.tsv"
	c.Data.MissingIDs = "data/processed/uniprot_missing_ids.tsv"
	c.Data.Master = "data/processed/enzyme_master.tsv"
	c.Data.Manifest = "data/processed/enzyme_master_manifest.tsv"
	c.Data.Tensor = "data/processed/embeddings.embt"
	c.Data.WorkDir = "data/work"
	c.UniProt.URL = "https://rest.uniprot.org/uniprotkb/search"
	c.UniProt.ChunkSize = 50
	c.UniProt.SleepMs = 500
	c.UniProt.Retries = 3
	c.DB.Port = 3306
	c.DB.Database = "enzymes"
	c.DB.Table = "enzyme_master"
	return c
}

// Load overlays the YAML file at path onto the defaults. A missing file
// is not an error: flags are enough to drive the pipeline.
func Load(path string) (*Config, error) {
	c := Default()
	bs, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(bs, c); err != nil {
		return nil, err
	}
	return c, nil
}
