package mcdb

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Config holds the options that govern how a DB opens and behaves: the
// fidelity/policy bundle applied to every record it parses or serializes,
// and a logger for conditions that aren't hard errors (malformed entity
// data, orphaned actor records) but are worth surfacing.
type Config struct {
	// Log receives non-fatal diagnostics. A nil Log is replaced by
	// logrus.New() when the DB is opened.
	Log *logrus.Logger
	// Options is the fidelity/length-policy/elision bundle applied to every
	// record this DB reads or writes.
	Options Options
}

// LoadConfig reads a TOML-encoded Config from path. Fields absent from the
// file keep DefaultOptions' values.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("mcdb: load config: %w", err)
	}
	var raw struct {
		Fidelity     string `toml:"fidelity"`
		LengthPolicy string `toml:"length_policy"`
		Elision      string `toml:"elision"`
	}
	if err := toml.Unmarshal(b, &raw); err != nil {
		return Config{}, fmt.Errorf("mcdb: parse config %s: %w", path, err)
	}
	conf := Config{Log: logrus.New(), Options: DefaultOptions}
	switch raw.Fidelity {
	case "semantic":
		conf.Options.Fidelity = Semantic
	case "", "bit_perfect":
	default:
		return Config{}, fmt.Errorf("mcdb: config %s: unknown fidelity %q", path, raw.Fidelity)
	}
	switch raw.LengthPolicy {
	case "saturate":
		conf.Options.LengthPolicy = LengthPolicySaturate
	case "", "error":
	default:
		return Config{}, fmt.Errorf("mcdb: config %s: unknown length_policy %q", path, raw.LengthPolicy)
	}
	switch raw.Elision {
	case "always_write":
		conf.Options.Elision = AlwaysWrite
	case "always_elide":
		conf.Options.Elision = AlwaysElide
	case "", "match":
	default:
		return Config{}, fmt.Errorf("mcdb: config %s: unknown elision %q", path, raw.Elision)
	}
	return conf, nil
}

// OpenWithStore wires an already-opened KeyValueStore (and the directory
// holding level.dat/levelname.txt) into a DB, parsing the directory's
// level.dat if present. Concrete storage-engine adapters (e.g.
// world/mcdb/leveldb) call this after opening their own engine, keeping this
// package free of any storage-engine import.
func (conf Config) OpenWithStore(store KeyValueStore, dir string) (*DB, error) {
	return conf.OpenWithDirectory(store, osDirectory{root: dir})
}

// OpenWithDirectory is OpenWithStore for a caller that wants to supply its
// own Directory instead of a real filesystem path, e.g. a test fixture or an
// archive-backed world.
func (conf Config) OpenWithDirectory(store KeyValueStore, fs Directory) (*DB, error) {
	if conf.Log == nil {
		conf.Log = logrus.New()
	}
	db := &DB{conf: conf, store: store, fs: fs}
	if b, err := fs.ReadFile("level.dat"); err == nil {
		ldat, err := ParseLevelDat(b)
		if err != nil {
			return nil, fmt.Errorf("mcdb: parse level.dat: %w", err)
		}
		db.ldat = ldat
	}
	return db, nil
}
