package sniffkit_test

import (
	"context"
	"fmt"

	"github.com/gobeaver/sniffkit"
	"github.com/gobeaver/sniffkit/driver/memory"
)

func ExampleClassify() {
	for _, doc := range []string{
		"<!DOCTYPE html><body>hello</body>",
		"var x = function() { return 1; }",
		"the quick brown fox",
		"PK\x03\x04\x00\x00",
	} {
		fmt.Println(sniffkit.Classify([]byte(doc)).Label)
	}
	// Output:
	// HTML
	// Javascript
	// Plain Text
	// binary
}

func ExampleVerdict() {
	fmt.Println(sniffkit.Verdict(sniffkit.Scores{HTML: 1, JavaScript: 0.5, Text: 0.5}))
	fmt.Println(sniffkit.Verdict(sniffkit.Scores{HTML: 0.2, JavaScript: 1.5, Text: 1}))
	fmt.Println(sniffkit.Verdict(sniffkit.Scores{HTML: 0.2, JavaScript: 1, Text: 1}))
	// Output:
	// HTML
	// Javascript
	// Plain Text
}

func ExampleClassifyFile() {
	ctx := context.Background()

	src := memory.New()
	_ = src.Write("site/app.js", []byte("function main() { run(); }"))

	res, err := sniffkit.ClassifyFile(ctx, sniffkit.NewClassifier(), src, "site/app.js", 1<<20)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(res.Label, res.Stage)
	// Output:
	// Javascript scored
}

func ExampleNewCachingClassifier() {
	c := sniffkit.NewCachingClassifier(sniffkit.NewClassifier(), sniffkit.NewMemoryCache())

	data := []byte("<!html><p>cached</p>")
	c.Classify(data)
	c.Classify(data)

	stats := c.Cache().(sniffkit.CacheStats).Stats()
	fmt.Println(stats.Hits, stats.Misses)
	// Output:
	// 1 1
}
