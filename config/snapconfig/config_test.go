package snapconfig

import (
	"errors"
	"testing"

	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/snapshot"
)

func TestParseDefaults(t *testing.T) {
	for _, text := range []string{"", "  ", "{}"} {
		c, err := Parse([]byte(text))
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if c.Hasher != "sha256" || len(c.Digesters) != 0 {
			t.Fatalf("Unexpected defaults %+v", c)
		}
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`{"Hasher": "xxh3", "Digesters": ["text"], "StatsScope": "ci"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := c.NewSnapshotter(stats.NilStatsReceiver())
	if err != nil {
		t.Fatalf("NewSnapshotter: %v", err)
	}
	n, err := s.Snapshot("x")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(s.Digest(n)) != 16 {
		t.Fatalf("Expected a 16 byte xxh3 digest, got %d", len(s.Digest(n)))
	}
	d, _ := c.Digester()
	if chain, ok := d.(snapshot.ChainDigester); !ok || len(chain) != 1 {
		t.Fatalf("Expected a single text digester, got %#v", d)
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		`{"Hasher": "md4"}`,
		`{"Digesters": ["reflect"]}`,
		`{"Hash": "sha256"}`,
		`{`,
	} {
		if _, err := Parse([]byte(text)); err == nil {
			t.Fatalf("Expected Parse(%s) to fail", text)
		}
	}
}

func TestStatsScope(t *testing.T) {
	stat := stats.DefaultStatsReceiver()
	c := Config{Hasher: "sha256", StatsScope: "ci"}
	c.Stats(stat).Counter("x").Inc(1)
	stats.VerifyCounts("scope", stat, t, map[string]int64{"ci/x": 1})
}

func TestGetConfigText(t *testing.T) {
	var asked string
	asset := func(name string) ([]byte, error) {
		asked = name
		if name == "config/local.json" {
			return []byte(`{"Hasher": "xxh3"}`), nil
		}
		return nil, errors.New("no such asset")
	}

	text, err := GetConfigText("local.json", asset)
	if err != nil || string(text) != `{"Hasher": "xxh3"}` || asked != "config/local.json" {
		t.Fatalf("Unexpected file config %q, %v (asked %s)", text, err, asked)
	}
	if _, err := GetConfigText("missing.json", asset); err == nil {
		t.Fatalf("Expected an error for a missing config file")
	}
	literal := `{"Hasher": "sha256"}`
	if text, err := GetConfigText(literal, asset); err != nil || string(text) != literal {
		t.Fatalf("Expected literal JSON back, got %q, %v", text, err)
	}
}
