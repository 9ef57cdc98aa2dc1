// refbitcache-inspect is a diagnostic CLI: it fetches a running
// process's RefBitClockCache snapshot over HTTP and renders it. It
// never drives workload against the cache — only observes.
//
// The target Go service is expected to expose:
//
//	GET /debug/refbitcache/snapshot — JSON payload of CacheStats.
//
// Grounded on the arena-cache sibling project's cmd/arena-cache-inspect
// fetch/watch/render shape, adapted to this cache's observability
// surface and to flash-flags for flag parsing.
//
// © 2025 AGILira. MPL-2.0.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flashflags "github.com/agilira/flash-flags"
)

func main() {
	fs := flashflags.New("refbitcache-inspect")
	target := fs.String("target", "http://localhost:6060", "base URL of the process exposing /debug/refbitcache/snapshot")
	watch := fs.Bool("watch", false, "poll the snapshot endpoint repeatedly")
	interval := fs.Duration("interval", 2*time.Second, "poll interval when -watch is set")
	jsonOut := fs.Bool("json", false, "print the raw JSON snapshot instead of a formatted view")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	opts := options{target: target.Value(), jsonOut: jsonOut.Value()}

	if watch.Value() {
		ticker := time.NewTicker(interval.Value())
		defer ticker.Stop()
		for {
			if err := dumpOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}

	if err := dumpOnce(ctx, opts); err != nil {
		fatal(err)
	}
}

type options struct {
	target  string
	jsonOut bool
}

func dumpOnce(ctx context.Context, opts options) error {
	snap, err := fetchSnapshot(ctx, opts.target)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return prettyPrint(snap)
}

func fetchSnapshot(ctx context.Context, base string) (map[string]any, error) {
	url := base + "/debug/refbitcache/snapshot"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	var data map[string]any
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func prettyPrint(data map[string]any) error {
	fmt.Printf("Hits:            %v\n", data["Hits"])
	fmt.Printf("Misses:          %v\n", data["Misses"])
	fmt.Printf("Evictions:       %v\n", data["Evictions"])
	fmt.Printf("ForcedEvictions: %v\n", data["ForcedEvictions"])
	fmt.Printf("Rehashes:        %v\n", data["Rehashes"])
	fmt.Printf("Size/Capacity:   %v/%v\n", data["Size"], data["Capacity"])
	fmt.Printf("IndexUsed/Size:  %v/%v\n", data["IndexUsed"], data["IndexSize"])
	fmt.Printf("ClockHand:       %v\n", data["ClockHand"])
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "refbitcache-inspect:", err)
	os.Exit(1)
}
