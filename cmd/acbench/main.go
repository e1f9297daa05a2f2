package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/sansecio/acmatch/ahocorasick"
	"github.com/sansecio/acmatch/cmd/internal"
	"github.com/sansecio/acmatch/config"
	"github.com/sansecio/acmatch/internal/logger"
	re2 "github.com/wasilibs/go-re2"
)

func main() {
	keywordsPath := flag.String("keywords", "fixture/keywords.txt", "path to keyword list")
	scanPath := flag.String("scan", "fixture/corpus.txt", "path to file to scan")
	kindName := flag.String("kind", "leftmost-longest", "match kind")
	iterations := flag.Int("n", 1, "number of iterations")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (default threshold only)")
	flag.Parse()

	kind, err := config.ParseKind(*kindName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*scanPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read scan file: %v\n", err)
		os.Exit(1)
	}
	list, warnings, err := internal.LoadKeywords(*keywordsPath, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load keywords: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("acbench")
	for _, w := range warnings {
		log.Warn(w)
	}

	haystack := ahocorasick.Units(string(data))
	fmt.Printf("Scanning %d units for %d keywords (%s), %d iterations\n\n", len(haystack), list.Len(), kind, *iterations)

	thresholds := []struct {
		name string
		th   ahocorasick.Thresholder
	}{
		{"default", nil},
		{"hash", ahocorasick.AlwaysHash},
		{"range", ahocorasick.AlwaysRange},
	}
	for _, th := range thresholds {
		a, err := ahocorasick.Build(list.Keywords(), ahocorasick.Options{Kind: kind, Threshold: th.th, SkipInvalidKeywords: true})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: failed to build: %v\n", th.name, err)
			os.Exit(1)
		}
		profile := ""
		if th.th == nil {
			profile = *cpuprofile
		}
		elapsed, matches := benchAutomaton(a, haystack, *iterations, profile)
		s := a.Stats()
		fmt.Printf("%-8s %v  (%.2f MB/s)  %d matches  %d nodes (%d range)\n",
			th.name+":", elapsed, mbPerSecond(len(data), elapsed), matches, s.Nodes, s.RangeNodes)
	}

	if kind == ahocorasick.LeftmostLongest {
		elapsed, matches := benchRE2(list.Keywords(), string(data), *iterations)
		fmt.Printf("%-8s %v  (%.2f MB/s)  %d matches\n", "go-re2:", elapsed, mbPerSecond(len(data), elapsed), matches)
	}
}

func mbPerSecond(size int, d time.Duration) float64 {
	return float64(size) / d.Seconds() / 1024 / 1024
}

func benchAutomaton(a *ahocorasick.Automaton[string], haystack []uint16, iterations int, cpuprofile string) (time.Duration, int) {
	count := 0
	l := ahocorasick.ListenerFunc[string](func(int, int, string) bool {
		count++
		return true
	})

	// Warm up
	for i := 0; i < 3; i++ {
		a.Scan(haystack, l)
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		count = 0
		a.Scan(haystack, l)
	}
	return time.Since(start) / time.Duration(iterations), count
}

// benchRE2 runs the same keywords as one leftmost-longest alternation. Byte
// offsets differ from unit offsets on non-ASCII input but the match count is
// comparable.
func benchRE2(keywords []ahocorasick.Keyword[string], data string, iterations int) (time.Duration, int) {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(ahocorasick.String(k.Pattern))
	}
	re, err := re2.Compile(strings.Join(quoted, "|"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "go-re2: failed to compile: %v\n", err)
		os.Exit(1)
	}
	re.Longest()

	var matches int
	start := time.Now()
	for i := 0; i < iterations; i++ {
		matches = len(re.FindAllStringIndex(data, -1))
	}
	return time.Since(start) / time.Duration(iterations), matches
}
