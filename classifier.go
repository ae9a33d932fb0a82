package sniffkit

// Sniffer classifies a byte buffer. The buffer is never modified.
type Sniffer interface {
	Classify(data []byte) Result
}

// Stage identifies the terminal path a classification took.
type Stage string

const (
	// StageBinary means the Binary Guard found a zero byte.
	StageBinary Stage = "binary"
	// StageEmpty means the input had no bytes at all.
	StageEmpty Stage = "empty"
	// StageScored means the full pipeline ran and the verdict came from the scores.
	StageScored Stage = "scored"
)

// Scores holds the three hypothesis accumulators of one classification.
// They are evidence strengths, not probabilities, and need not sum to 1.
type Scores struct {
	HTML       float64 `json:"html" yaml:"html"`
	JavaScript float64 `json:"javascript" yaml:"javascript"`
	Text       float64 `json:"text" yaml:"text"`
}

// Result is the outcome of classifying a single buffer.
type Result struct {
	// Label is the final verdict.
	Label Label `json:"label" yaml:"label"`

	// Scores are the hypothesis values the verdict was derived from.
	// All zero when Stage is StageBinary or StageEmpty.
	Scores Scores `json:"scores" yaml:"scores"`

	// Stage reports which terminal path produced Label.
	Stage Stage `json:"stage" yaml:"stage"`

	// Size is the length of the input buffer.
	Size int `json:"size" yaml:"size"`

	// EffectiveSize is the length of the buffer after script regions were
	// collapsed. It is the denominator of the punctuation ratios.
	EffectiveSize int `json:"effective_size" yaml:"effective_size"`
}

// Classifier is the statistical content classifier. The zero value is ready
// to use and safe for concurrent use: every call allocates its own histogram
// and score accumulators.
type Classifier struct{}

// NewClassifier returns a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify runs the Binary Guard and, when it does not short-circuit, the
// preprocessor, histogram and both scoring passes before combining the
// scores into a verdict.
func (c *Classifier) Classify(data []byte) Result {
	res := Result{Size: len(data)}

	if IsBinary(data) {
		res.Label = Binary
		res.Stage = StageBinary
		return res
	}

	// Absence of content is not binary
	if len(data) == 0 {
		res.Label = PlainText
		res.Stage = StageEmpty
		return res
	}

	work := StripScripts(data)
	hist := BuildHistogram(work)

	var scores Scores
	punctuationPass(&scores, hist)
	signaturePass(&scores, work)

	res.Label = combine(scores)
	res.Scores = scores
	res.Stage = StageScored
	res.EffectiveSize = hist.Total()
	return res
}

var defaultClassifier = &Classifier{}

// Classify classifies data with the default Classifier.
func Classify(data []byte) Result {
	return defaultClassifier.Classify(data)
}

// DetectLabel returns only the verdict for data.
func DetectLabel(data []byte) Label {
	return defaultClassifier.Classify(data).Label
}

var _ Sniffer = (*Classifier)(nil)
