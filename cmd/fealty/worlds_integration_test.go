//go:build integration

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/freeeve/fealty/internal/testutil"
)

func TestListWorlds(t *testing.T) {
	rdb := testutil.SetupRedis(t)
	testutil.CleanupRedis(t, rdb)
	ctx := context.Background()

	doc, err := os.ReadFile(calradiaSnapshot)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"sturgia", "calradia"} {
		if err := rdb.Set(ctx, "world:"+id+":snapshot", doc, 0).Err(); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	opts := rdb.Options()
	url := fmt.Sprintf("redis://%s/%d", opts.Addr, opts.DB)
	t.Setenv("FEALTY_CONFIG_DIR", t.TempDir())

	var out bytes.Buffer
	if err := run(ctx, []string{"-redis", url, "-worlds"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "calradia\nsturgia\n" {
		t.Errorf("worlds output = %q", got)
	}

	out.Reset()
	if err := run(ctx, []string{"-redis", url, "-world", "calradia", "-mode", "table"}, &out); err != nil {
		t.Fatalf("score from redis: %v", err)
	}
}
