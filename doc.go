// Package sniffkit classifies the content type of a byte buffer as binary,
// HTML, JavaScript or plain text by statistical analysis of its raw bytes.
// Filenames and declared MIME types are never consulted, which makes it
// useful where labels cannot be trusted: mislabelled uploads, extension-less
// files, content sniffing for indexing or security.
//
// # Classification
//
//	res := sniffkit.Classify(data)
//	fmt.Println(res.Label)        // HTML
//	fmt.Println(res.Scores.HTML)  // evidence for the html hypothesis
//
// A classification runs a fixed pipeline:
//
//  1. Binary guard: any zero byte yields [Binary]; an empty buffer yields [PlainText].
//  2. Preprocessing: the region from the first <script> to the last </script>
//     is collapsed to an empty script element, on a copy of the buffer.
//  3. Histogram: every byte value is counted.
//  4. Punctuation ratio: angle-bracket density is compared with brace and
//     parenthesis density and credited to html or javascript.
//  5. Signatures: doctype markers credit html, var/function credit javascript,
//     and the absence of both credits text.
//  6. Verdict: html wins when html >= javascript+text, javascript when
//     javascript > html+text, and plain text otherwise.
//
// Classification is a pure function of the buffer, safe for concurrent use.
// UTF-16 and other encodings with embedded NULs are reported as binary.
//
// # Sources
//
// The classifier performs no I/O. Bytes come from a [Source]:
//
//   - Local filesystem (github.com/gobeaver/sniffkit/driver/local)
//   - In-memory (github.com/gobeaver/sniffkit/driver/memory)
//   - Amazon S3 (github.com/gobeaver/sniffkit/driver/s3)
//
// [LoadFile] reads a whole file with a size limit and [ClassifyFile] combines
// loading and classification.
//
// # Caching
//
// Results can be memoized by content digest:
//
//	cached := sniffkit.NewCachingClassifier(sniffkit.NewClassifier(), nil)
//
// # Evaluation
//
// The evaluate sub-package walks a labelled corpus, infers the expected label
// from each file's extension and reports per-category accuracy.
//
// # Configuration
//
// A [Service] can be configured via environment variables with the
// BEAVER_SNIFFKIT_ prefix, or programmatically via the [Config] struct:
//
//	svc, err := sniffkit.New(&sniffkit.Config{
//	    Driver:        "local",
//	    LocalBasePath: "./uploads",
//	    MaxFileSize:   10 << 20,
//	})
//	res, err := svc.ClassifyFile(ctx, "avatar")
package sniffkit
