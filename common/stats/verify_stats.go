package stats

import (
	"bytes"
	"fmt"
	"testing"
)

/*
Utilities for validating the stats registry contents
*/

/*
Verify that the stats receiver's registry holds counters with the expected
counts. A missing counter is treated as zero.
*/
func VerifyCounts(tag string, stat StatsReceiver, t *testing.T, expected map[string]int64) {
	t.Helper()
	dsr, ok := stat.(*defaultStatsReceiver)
	if !ok {
		t.Fatalf("%s: stats receiver %T is not backed by a registry", tag, stat)
	}
	reg, ok := dsr.registry.(*finagleStatsRegistry)
	if !ok {
		t.Fatalf("%s: registry %T cannot be verified", tag, dsr.registry)
	}

	asJson := reg.MarshalAll()
	failed := false
	var msg bytes.Buffer
	msg.WriteString(tag)
	msg.WriteString(":stats registry error:\n")
	for key, want := range expected {
		var got int64
		if v, ok := asJson[key]; ok {
			got, _ = v.(int64)
		}
		if got != want {
			failed = true
			msg.WriteString(fmt.Sprintf("%s: got %d, expected %d\n", key, got, want))
		}
	}
	if failed {
		pretty, _ := reg.MarshalJSONPretty()
		msg.Write(pretty)
		t.Error(msg.String())
	}
}
