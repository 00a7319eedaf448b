package textquality

import "regexp"

// Patterns are compiled once at package load: these scorers run once per
// review field at submission time and in bulk during backfills.
var (
	timestampPattern = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	frequencyPattern = regexp.MustCompile(`(?i)\b\d+\s*(hz|khz)\b`)
	dbPattern        = regexp.MustCompile(`\b-?\d+\s*d[bB]\b`)

	suggestionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(try|consider|experiment with|you could|you might|i['’]d suggest|i recommend|maybe)\b`),
		regexp.MustCompile(`(?i)\b(instead of|rather than|swap|replace|add|remove|reduce|increase|boost|cut)\b`),
		regexp.MustCompile(`(?i)\b(would benefit from|could use|needs more|needs less|too much|not enough)\b`),
	}

	causalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(because|since|which causes|which makes|the result is|leading to|due to)\b`),
		regexp.MustCompile(`(?i)\b(so that|in order to|this creates|this gives|this adds)\b`),
	}

	comparisonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(compared to|similar to|reminds me of|like .+'s|in the style of)\b`),
		regexp.MustCompile(`(?i)\b(currently .+ but could|right now .+ but|instead of .+ try)\b`),
	}

	genericPhrases = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bsounds? good\b`),
		regexp.MustCompile(`(?i)\bnice (beat|track|song|music|work)\b`),
		regexp.MustCompile(`(?i)\bkeep it up\b`),
		regexp.MustCompile(`(?i)\bgood job\b`),
		regexp.MustCompile(`(?i)\bi like(d)? it\b`),
		regexp.MustCompile(`(?i)\bpretty (good|nice|cool|dope)\b`),
		regexp.MustCompile(`(?i)\bno complaints?\b`),
		regexp.MustCompile(`(?i)\bnothing (wrong|bad|to complain)\b`),
		regexp.MustCompile(`(?i)\boverall (good|great|nice)\b`),
	}
)

// Closed vocabularies for membership tests, built once to avoid per-call
// allocation.
var elementRefs = newSet(
	"kick", "snare", "hi-hat", "hihat", "hat", "bass", "sub", "808",
	"vocal", "vocals", "lead", "synth", "pad", "guitar", "piano",
	"keys", "strings", "drums", "percussion", "clap", "ride", "cymbal",
	"tom", "shaker", "tambourine", "bell", "pluck", "arp", "chord",
	"melody", "harmony", "hook", "riff", "sample", "loop", "fx",
	"reverb", "delay", "chorus effect", "flanger", "phaser",
	"distortion", "saturation", "compression", "limiter", "eq",
	"filter", "sidechain", "automation", "panning",
)

var sectionRefs = newSet(
	"intro", "verse", "chorus", "pre-chorus", "prechorus", "bridge",
	"breakdown", "buildup", "build-up", "drop", "outro", "hook",
	"interlude", "transition", "middle 8", "middle eight",
)

// multiWordSections are section names a whitespace tokenizer cannot match
var multiWordSections = []string{"pre-chorus", "middle 8", "middle eight", "build-up"}

var productionTerms = newSet(
	"mix", "master", "mastering", "headroom", "clipping", "distortion",
	"saturation", "sidechain", "compression", "limiter", "eq",
	"equalization", "low-pass", "high-pass", "bandpass", "notch",
	"resonance", "cutoff", "frequency", "spectrum", "spectral",
	"stereo", "mono", "mid-side", "panning", "width", "depth",
	"reverb", "delay", "echo", "spatial", "imaging", "soundstage",
	"transient", "attack", "release", "sustain", "decay", "envelope",
	"adsr", "dynamics", "loudness", "lufs", "rms", "peak",
	"gain staging", "gain", "level", "volume", "automation",
	"arrangement", "structure", "tempo", "bpm", "groove", "swing",
	"quantize", "humanize", "timing", "pitch", "tuning", "key",
	"scale", "chord progression", "harmonic", "melodic", "rhythmic",
	"timbre", "tone", "texture", "warmth", "brightness", "muddy",
	"harsh", "crisp", "clean", "punchy", "boomy", "thin", "full",
	"rich", "airy", "dark", "bright", "presence", "clarity",
	"separation", "definition", "cohesion", "balance", "polish",
	"professional", "radio-ready", "release-ready", "commercial",
	"low end", "low-end", "mids", "mid-range", "midrange",
	"high end", "high-end", "highs", "lows", "sub-bass", "subbass",
	"top end", "top-end", "frequency range", "frequency spectrum",
	"noise floor", "signal-to-noise", "phase", "phase cancellation",
	"mono compatibility", "reference track", "a/b", "parallel",
	"bus", "send", "return", "insert", "plugin", "vst", "daw",
)

// multiWordTerms are production terms a whitespace tokenizer cannot match
var multiWordTerms = []string{
	"low end", "high end", "mid range", "gain staging", "chord progression",
	"frequency range", "frequency spectrum", "noise floor", "phase cancellation",
	"mono compatibility", "reference track", "signal-to-noise",
}

// aspectCategories group vocabulary into independent observation aspects;
// mentioning several distinct aspects indicates multi-dimensional listening.
var aspectCategories = map[string][]string{
	"spectral":    {"eq", "frequency", "bass", "treble", "mids", "low end", "high end", "bright", "dark", "muddy", "harsh"},
	"dynamics":    {"compression", "limiter", "loudness", "dynamics", "transient", "punch", "squash"},
	"spatial":     {"stereo", "panning", "width", "reverb", "delay", "spatial", "depth", "imaging"},
	"arrangement": {"arrangement", "structure", "verse", "chorus", "bridge", "intro", "outro", "section"},
	"timbral":     {"timbre", "tone", "texture", "warmth", "character", "sound design"},
}

func newSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
