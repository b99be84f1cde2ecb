package valueio

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anima18/gradle/snapshot"
)

func snap(t *testing.T, format, doc string) snapshot.Node {
	t.Helper()
	v, err := Decode(format, []byte(doc))
	require.NoError(t, err)
	n, err := snapshot.NewSnapshotter(nil, nil, nil).Snapshot(v)
	require.NoError(t, err)
	return n
}

func TestJSON(t *testing.T) {
	n := snap(t, JSON, `{"b": [1, 2.5, "x", null, true], "a": 9007199254740993}`)
	m, ok := n.(*snapshot.Map)
	require.True(t, ok)
	require.False(t, m.Ordered())

	other := snap(t, JSON, `{"a": 9007199254740993, "b": [1, 2.5, "x", null, true]}`)
	require.True(t, snapshot.Equal(n, other), "key order must not matter in json objects")

	expected, err := snapshot.NewSnapshotter(nil, nil, nil).Snapshot(map[string]interface{}{
		"a": int64(9007199254740993),
		"b": []interface{}{1, 2.5, "x", nil, true},
	})
	require.NoError(t, err)
	require.True(t, snapshot.Equal(n, expected), "got %s", n)
}

func TestJSONErrors(t *testing.T) {
	_, err := Decode(JSON, []byte(`{"a": `))
	require.Error(t, err)
	_, err = Decode(JSON, []byte(`{} {}`))
	require.Error(t, err)
}

func TestYAMLKeepsOrder(t *testing.T) {
	n := snap(t, YAML, "b: 1\na: [x, 2.5]\nc: ~\n")
	require.Equal(t, `OrderedMap{String("b"): Int(1), String("a"): List[String("x"), Float(2.5)], String("c"): Null}`, n.String())

	reordered := snap(t, YAML, "a: [x, 2.5]\nb: 1\nc: ~\n")
	require.False(t, snapshot.Equal(n, reordered))
}

func TestYAMLSetsAndAliases(t *testing.T) {
	n := snap(t, YAML, `
base: &base
  jdk: 17
  flags: !!set
    ? debug
    ? opt
app:
  <<: *base
  jdk: 21
  name: app
`)
	expected := snap(t, YAML, `
base:
  jdk: 17
  flags: !!set
    ? opt
    ? debug
app:
  flags: !!set
    ? debug
    ? opt
  jdk: 21
  name: app
`)
	require.True(t, snapshot.Equal(n, expected), "got\n%s\nexpected\n%s", snapshot.Render(n), snapshot.Render(expected))
}

func TestYAMLMergeFirstSourceWins(t *testing.T) {
	n := snap(t, YAML, `
a: &a {x: 1}
b: &b {x: 2, y: 3}
c: {<<: [*a, *b]}
`)
	m, ok := n.(*snapshot.Map)
	require.True(t, ok)
	c := m.Entry(2)
	require.Equal(t, `String("c")`, c.Key.String())
	require.Equal(t, `OrderedMap{String("x"): Int(1), String("y"): Int(3)}`, c.Value.String())
}

func TestYAMLAliasExpansionLimit(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 6; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", ")
		fmt.Fprintf(&doc, "l%d: &l%d [%s]\n", i, i, refs)
	}
	_, err := Decode(YAML, []byte(doc.String()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expand")

	// The same shape a few levels shallower stays within the limit.
	_, err = Decode(YAML, []byte("l0: &l0 [x, x]\nl1: &l1 [*l0, *l0]\nl2: [*l1, *l1]\n"))
	require.NoError(t, err)
}

func TestJSONLargeIntegers(t *testing.T) {
	max := snap(t, JSON, "18446744073709551615")
	below := snap(t, JSON, "18446744073709551614")
	require.Equal(t, "Uint(18446744073709551615)", max.String())
	require.False(t, snapshot.Equal(max, below))
	require.True(t, snapshot.Equal(max, snap(t, YAML, "18446744073709551615")))

	huge := snap(t, JSON, "[123456789012345678901234567890, 123456789012345678901234567891]")
	require.Equal(t, "List[Number(123456789012345678901234567890), Number(123456789012345678901234567891)]", huge.String())
	require.Equal(t, "Float(2.5)", snap(t, JSON, "2.5").String())
}

func TestYAMLScalars(t *testing.T) {
	n := snap(t, YAML, "[true, 0x10, 18446744073709551615, 1e3, !!binary aGk=, '12', 2001-12-14]")
	require.Equal(t, `List[Bool(true), Int(16), Uint(18446744073709551615), Float(1000), Bytes(6869), String("12"), String("2001-12-14")]`, n.String())
}

func TestYAMLEmpty(t *testing.T) {
	v, err := Decode(YAML, []byte(""))
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestFormatForPath(t *testing.T) {
	for path, want := range map[string]string{"a.json": JSON, "b.YAML": YAML, "dir/c.yml": YAML} {
		got, err := FormatForPath(path)
		require.NoError(t, err)
		require.Equal(t, want, got, path)
	}
	_, err := FormatForPath("d.toml")
	require.Error(t, err)
	_, err = Decode("toml", nil)
	require.Error(t, err)
}
